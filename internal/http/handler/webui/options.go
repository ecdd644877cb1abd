package webui

import "log/slog"

type Options struct {
	Sections []Section
	Logger   *slog.Logger
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Sections: DefaultSections,
		Logger:   slog.Default(),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithSections replaces the create pages.
func WithSections(sections ...Section) OptionFunc {
	return func(opts *Options) {
		opts.Sections = sections
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}
