package http

import (
	"net/http"
)

type Options struct {
	Address string
	BaseURL string
	// Mounts strip their prefix before dispatching.
	Mounts map[string]http.Handler
	// Routes are registered with their pattern as is.
	Routes      map[string]http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":3000",
		BaseURL: "/",
		Mounts:  map[string]http.Handler{},
		Routes:  map[string]http.Handler{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

func WithRoute(pattern string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Routes[pattern] = handler
	}
}

// WithMiddleware wraps the whole mux. The first middleware runs first.
func WithMiddleware(funcs ...func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = append(opts.Middlewares, funcs...)
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}
