package common

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/http/handler/webui/component"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/internal/slogx"
)

type HTTPError interface {
	error
	StatusCode() int
}

type UserFacingError interface {
	error
	UserMessage() string
}

type Error struct {
	err         string
	userMessage string
	statusCode  int
}

func (e *Error) StatusCode() int     { return e.statusCode }
func (e *Error) Error() string       { return e.err }
func (e *Error) UserMessage() string { return e.userMessage }

func NewError(err string, userMessage string, statusCode int) *Error {
	return &Error{err, userMessage, statusCode}
}

var (
	_ UserFacingError = &Error{}
	_ HTTPError       = &Error{}
)

// HandleError renders an error page. Errors that are neither HTTPError nor
// UserFacingError are logged and shown as 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
	}

	message := http.StatusText(statusCode)
	var userErr UserFacingError
	if errors.As(err, &userErr) {
		message = userErr.UserMessage()
	}

	if httpErr == nil && userErr == nil {
		slog.ErrorContext(r.Context(), "unexpected error", slogx.Error(err))
	}

	page := component.Layout(component.LayoutVModel{
		Title: http.StatusText(statusCode),
		User:  httpctx.User(r.Context()),
	}, component.MessagePage(http.StatusText(statusCode), message))

	templ.Handler(page, templ.WithStatus(statusCode)).ServeHTTP(w, r)
}
