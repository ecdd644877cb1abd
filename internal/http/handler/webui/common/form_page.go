package common

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/component"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/internal/http/toast"
	"github.com/goliatone/go-batmanform/internal/slogx"
	"github.com/goliatone/go-batmanform/pkg/form"
	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
)

// FormPage hosts one schema-driven form inside the dashboard layout.
type FormPage struct {
	Title  string
	Schema model.FormSchema
	// Submit receives the collected values. Its error is shown as a toast.
	Submit form.SubmitHandler
	// SuccessTitle and SuccessPath drive the toast and redirect after an
	// accepted submission. An empty SuccessPath re-renders an empty form.
	SuccessTitle string
	SuccessPath  string
	// ErrorTitle heads the toast of a rejected submission.
	ErrorTitle string
	// ClearOnError lists fields blanked before re-rendering a rejected
	// submission.
	ClearOnError []string
}

// FormPages renders FormPage values with a shared renderer and notifier.
type FormPages struct {
	renderer render.Renderer
	notifier *toast.Notifier
}

func NewFormPages(renderer render.Renderer, notifier *toast.Notifier) *FormPages {
	return &FormPages{renderer: renderer, notifier: notifier}
}

// Serve renders page on GET and handles the posted round-trip on POST. Each
// request gets its own form instance so password visibility and values never
// leak between users.
func (p *FormPages) Serve(w http.ResponseWriter, r *http.Request, page FormPage) {
	ctx := slogx.WithAttrs(r.Context(), slog.String("form", page.Schema.ID))
	r = r.WithContext(ctx)

	cell := render.NewCell(nil)
	f, err := form.New(page.Schema,
		form.WithRenderer(p.renderer),
		form.WithValues(cell),
		form.WithMethod(http.MethodPost),
		form.WithSubmitHandler(page.Submit),
	)
	if err != nil {
		HandleError(w, r, errors.WithStack(err))
		return
	}

	status := http.StatusOK
	var body []byte

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		body, err = f.Render(ctx)
	case http.MethodPost:
		var ok bool
		body, status, ok = p.handlePost(w, r, f, cell, page)
		if !ok {
			return
		}
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		HandleError(w, r, NewError("method not allowed", "This page does not accept that request.", http.StatusMethodNotAllowed))
		return
	}
	if err != nil {
		HandleError(w, r, errors.WithStack(err))
		return
	}

	p.respond(w, r, page.Title, component.FormPage(body), status)
}

func (p *FormPages) handlePost(w http.ResponseWriter, r *http.Request, f *form.Form, cell *render.Cell, page FormPage) ([]byte, int, bool) {
	ctx := r.Context()
	id := page.Schema.ID

	result, err := f.Handle(r)
	switch {
	case errors.Is(err, form.ErrFormMismatch):
		HandleError(w, r, NewError(err.Error(), "The submitted form does not belong to this page.", http.StatusBadRequest))
		return nil, 0, false
	case result.Action == "":
		HandleError(w, r, NewError(errorString(err), "The submitted form could not be read.", http.StatusBadRequest))
		return nil, 0, false
	case result.Action == form.ActionToggle:
		Submissions.WithLabelValues(id, OutcomeToggled).Inc()
		if err != nil {
			HandleError(w, r, errors.WithStack(err))
			return nil, 0, false
		}
		return result.Body, http.StatusOK, true
	case err != nil:
		Submissions.WithLabelValues(id, OutcomeRejected).Inc()
		slog.WarnContext(ctx, "form submission rejected", slogx.Error(err))
		p.push(w, r, toast.KindError, page.ErrorTitle, api.Message(err, "Something went wrong. Please try again."))
		for _, name := range page.ClearOnError {
			cell.SetValue(name, "")
		}
		body, renderErr := f.Render(ctx)
		if renderErr != nil {
			HandleError(w, r, errors.WithStack(renderErr))
			return nil, 0, false
		}
		return body, http.StatusUnprocessableEntity, true
	}

	Submissions.WithLabelValues(id, OutcomeAccepted).Inc()
	slog.InfoContext(ctx, "form submission accepted")
	p.push(w, r, toast.KindSuccess, page.SuccessTitle, "")
	if page.SuccessPath != "" {
		http.Redirect(w, r, page.SuccessPath, http.StatusSeeOther)
		return nil, 0, false
	}

	f.Reset()
	body, err := f.Render(ctx)
	if err != nil {
		HandleError(w, r, errors.WithStack(err))
		return nil, 0, false
	}
	return body, http.StatusOK, true
}

// Respond renders body inside the layout with the pending toasts.
func (p *FormPages) Respond(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	p.respond(w, r, title, body, http.StatusOK)
}

func (p *FormPages) respond(w http.ResponseWriter, r *http.Request, title string, body templ.Component, status int) {
	page := component.Layout(component.LayoutVModel{
		Title:  title,
		User:   httpctx.User(r.Context()),
		Toasts: p.pop(w, r),
	}, body)
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// Toast queues a notification shown on the next rendered page.
func (p *FormPages) Toast(w http.ResponseWriter, r *http.Request, kind toast.Kind, title, description string) {
	p.push(w, r, kind, title, description)
}

func (p *FormPages) push(w http.ResponseWriter, r *http.Request, kind toast.Kind, title, description string) {
	if p.notifier == nil || title == "" {
		return
	}
	if _, err := p.notifier.Push(w, r, kind, title, description); err != nil {
		slog.ErrorContext(r.Context(), "could not queue toast", slogx.Error(err))
	}
}

func (p *FormPages) pop(w http.ResponseWriter, r *http.Request) []toast.Toast {
	if p.notifier == nil {
		return nil
	}
	toasts, err := p.notifier.Pop(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not read toasts", slogx.Error(err))
	}
	return toasts
}

func errorString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// SubmitTo adapts a backend create call into a form submit handler.
func SubmitTo(client func(ctx context.Context) *api.Client, path string) form.SubmitHandler {
	return func(ctx context.Context, values map[string]string) error {
		if _, err := client(ctx).Create(ctx, path, values); err != nil {
			return errors.WithStack(err)
		}
		return nil
	}
}
