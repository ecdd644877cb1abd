package authn

type Options struct {
	SessionName string
	// LoginRedirect is where a successful login lands.
	LoginRedirect string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SessionName:   "batman_session",
		LoginRedirect: "/dashboard",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithSessionName(sessionName string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = sessionName
	}
}

func WithLoginRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.LoginRedirect = path
	}
}
