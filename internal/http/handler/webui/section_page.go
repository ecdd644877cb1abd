package webui

import (
	"net/http"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/common"
	"github.com/goliatone/go-batmanform/internal/http/toast"
	"github.com/goliatone/go-batmanform/internal/slogx"
	"github.com/goliatone/go-batmanform/pkg/model"
)

func (h *Handler) newSectionHandler(section Section) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		schema, _ := h.schemas.Lookup(section.Schema)
		schema = h.populate(w, r, schema)

		title := section.Schema
		if schema.Title != nil && schema.Title.Label != "" {
			title = schema.Title.Label
		}

		h.pages.Serve(w, r, common.FormPage{
			Title:        title,
			Schema:       schema,
			Submit:       common.SubmitTo(h.clientFor, section.Collection),
			SuccessTitle: section.Success,
			SuccessPath:  section.SuccessPath,
			ErrorTitle:   "Could not save",
		})
	})
}

// populate fills selects whose options come from the backend. A failed
// lookup is reported as a toast and leaves the select empty.
func (h *Handler) populate(w http.ResponseWriter, r *http.Request, schema model.FormSchema) model.FormSchema {
	if _, ok := schema.Lookup("teacher"); !ok || schema.ID != "course" {
		return schema
	}

	ctx := r.Context()
	teachers, err := h.clientFor(ctx).ListTeachers(ctx)
	if err != nil {
		h.opts.Logger.WarnContext(ctx, "could not list teachers", slogx.Error(err))
		h.pages.Toast(w, r, toast.KindError, "Could not load teachers", api.Message(err, "The teacher list is unavailable."))
		return schema
	}

	options := make([]model.Option, 0, len(teachers))
	for _, teacher := range teachers {
		options = append(options, model.Option{ID: teacher.ID, Value: teacher.Name})
	}
	return schema.WithOptions("teacher", options)
}
