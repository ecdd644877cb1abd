package form

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
)

// ErrFormMismatch is returned by Handle when the posted form id belongs to a
// different schema.
var ErrFormMismatch = errors.New("form: posted form id does not match schema")

// Action names what a handled request did.
type Action string

const (
	ActionToggle Action = "toggle"
	ActionSubmit Action = "submit"
)

// Result describes one handled request.
type Result struct {
	Action Action
	// Toggled is the password field flipped by a toggle request.
	Toggled string
	// Values are the collected values of a submit request.
	Values map[string]string
	// Body is the re-rendered form of a toggle request.
	Body []byte
}

// Handle processes a posted round-trip. A request carrying the toggle button
// flips that password and re-renders with the posted values; any other
// request collects the values and runs the submit handler. Visibility is
// rebuilt from the request so concurrent users never share state.
func (f *Form) Handle(r *http.Request) (Result, error) {
	if err := r.ParseForm(); err != nil {
		return Result{}, fmt.Errorf("form: parse request: %w", err)
	}
	posted := r.Form
	if id := posted.Get(render.FormIDField); id != "" && f.schema.ID != "" && id != f.schema.ID {
		return Result{}, fmt.Errorf("%w: %q", ErrFormMismatch, id)
	}

	f.applyPosted(posted)
	source := render.Layered{render.FormValues(posted), f.values}
	state := f.requestState(posted)

	if toggle := strings.TrimSpace(posted.Get(render.ToggleField)); toggle != "" {
		if f.isPassword(toggle) {
			state.TogglePassword(toggle)
		}
		body, err := f.renderer.Render(r.Context(), f.schema, f.renderOptions(source, state))
		if err != nil {
			return Result{Action: ActionToggle, Toggled: toggle}, err
		}
		return Result{Action: ActionToggle, Toggled: toggle, Body: body}, nil
	}

	values := render.Collect(f.schema, source)
	err := f.submit(r.Context(), values)
	return Result{Action: ActionSubmit, Values: values}, err
}

// ServeHTTP renders on GET and handles round-trips posted back to it.
// Successful submissions redirect when WithRedirect is set and otherwise
// re-render; failed ones re-render with the posted values and status 422.
func (f *Form) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if strings.EqualFold(f.method, http.MethodGet) && isRoundTrip(r.URL.Query()) {
			f.serveRoundTrip(w, r)
			return
		}
		f.serveRender(w, r, f.values, render.NewState(), http.StatusOK)
	case http.MethodPost:
		f.serveRoundTrip(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (f *Form) serveRoundTrip(w http.ResponseWriter, r *http.Request) {
	result, err := f.Handle(r)
	switch {
	case errors.Is(err, ErrFormMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil && result.Action == "":
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if result.Action == ActionToggle {
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		f.write(w, http.StatusOK, result.Body)
		return
	}

	source := render.Layered{render.FormValues(r.Form), f.values}
	if err != nil {
		f.serveRender(w, r, source, f.requestState(r.Form), http.StatusUnprocessableEntity)
		return
	}
	if f.redirect != "" {
		http.Redirect(w, r, f.redirect, http.StatusSeeOther)
		return
	}
	f.serveRender(w, r, source, f.requestState(r.Form), http.StatusOK)
}

func (f *Form) serveRender(w http.ResponseWriter, r *http.Request, values render.ValueSource, state *render.State, status int) {
	body, err := f.renderer.Render(r.Context(), f.schema, f.renderOptions(values, state))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	f.write(w, status, body)
}

func (f *Form) write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", f.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// applyPosted mirrors posted values into a controlled sink and fires the
// select handler for selects whose value changed. The previous value comes
// from the snapshot rendered into the page when one was posted back.
func (f *Form) applyPosted(posted url.Values) {
	snapshot := render.ParseSelectSnapshot(posted.Get(render.SelectedField))
	model.Walk(f.schema.Fields, func(field model.FieldSchema, _ int) {
		if !interactive(field) {
			return
		}
		key := render.FieldKey(field)
		values, ok := posted[key]
		if !ok || len(values) == 0 {
			return
		}
		value := values[0]
		previous, seen := snapshot[key]
		if !seen {
			previous = render.ResolveValue(field, f.values)
		}
		if f.sink != nil {
			f.sink.SetValue(key, value)
		}
		if field.Type.Normalized() == model.FieldTypeSelect && value != previous && f.onSelect != nil {
			f.onSelect(value, key)
		}
	})
}

// requestState rebuilds password visibility from the request, keeping only
// names of password fields in the schema.
func (f *Form) requestState(posted url.Values) *render.State {
	state := render.NewState()
	for _, name := range render.ParseVisiblePasswords(posted.Get(render.VisibleField)) {
		if f.isPassword(name) {
			state.SetPasswordVisible(name, true)
		}
	}
	return state
}

func isRoundTrip(query url.Values) bool {
	return query.Has(render.FormIDField) || query.Has(render.ToggleField)
}
