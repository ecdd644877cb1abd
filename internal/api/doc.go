// Package api is the dashboard's client for the university REST backend.
// Responses arrive wrapped as {"data": ..., "meta": ...}; failures carry a
// "message" member that is surfaced to users through toasts.
package api
