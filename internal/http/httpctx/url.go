package httpctx

import (
	"context"
	"net/url"
)

// BaseURL returns the externally visible root of the dashboard. It defaults
// to "/".
func BaseURL(ctx context.Context) *url.URL {
	raw, _ := ctx.Value(keyBaseURL).(string)
	if raw == "" {
		raw = "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return &url.URL{Path: "/"}
	}
	return parsed
}

func SetBaseURL(ctx context.Context, baseURL string) context.Context {
	return context.WithValue(ctx, keyBaseURL, baseURL)
}

// CurrentURL returns the URL of the request being served.
func CurrentURL(ctx context.Context) *url.URL {
	current, ok := ctx.Value(keyCurrent).(*url.URL)
	if !ok || current == nil {
		return &url.URL{Path: "/"}
	}
	return current
}

func SetCurrentURL(ctx context.Context, u *url.URL) context.Context {
	return context.WithValue(ctx, keyCurrent, u)
}
