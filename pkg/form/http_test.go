package form_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-batmanform/pkg/form"
	"github.com/goliatone/go-batmanform/pkg/render"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla"
	"github.com/goliatone/go-batmanform/pkg/testsupport"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestServeHTTPRendersOnGet(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	f, err := form.New(testsupport.DepartmentSchema(), form.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `<option value="school_2" selected>`) {
		t.Fatalf("expected default selection:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `<input type="hidden" name="__selected" value="school=school_2">`) {
		t.Fatalf("expected rendered select snapshot:\n%s", rec.Body.String())
	}
}

func TestServeHTTPToggleKeepsPostedValues(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	f, err := form.New(testsupport.LoginSchema(), form.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, postForm(url.Values{
		render.FormIDField: {"login"},
		render.ToggleField: {"password"},
		"email":            {"ada@uni.edu"},
		"password":         {"s3cret"},
	}))
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, body)
	}
	for _, fragment := range []string{
		`value="ada@uni.edu"`,
		`type="text" id="password" name="password" value="s3cret"`,
		`<input type="hidden" name="__visible" value="password">`,
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, body)
		}
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, postForm(url.Values{
		render.ToggleField:  {"password"},
		render.VisibleField: {"password"},
		"password":          {"s3cret"},
	}))
	if !strings.Contains(rec.Body.String(), `type="password" id="password"`) {
		t.Fatalf("second toggle should mask:\n%s", rec.Body.String())
	}

	if f.PasswordVisible("password") {
		t.Fatalf("http round-trips must not touch instance state")
	}
}

func TestHandleSubmitCollectsAndNotifies(t *testing.T) {
	var (
		submitted map[string]string
		selected  [][2]string
	)
	cell := render.NewCell(nil)
	f, err := form.New(testsupport.DepartmentSchema(),
		form.WithRenderer(&recordingRenderer{}),
		form.WithValues(cell),
		form.WithSelectHandler(func(value, name string) { selected = append(selected, [2]string{value, name}) }),
		form.WithSubmitHandler(func(_ context.Context, values map[string]string) error {
			submitted = values
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	result, err := f.Handle(postForm(url.Values{
		render.FormIDField: {"department"},
		"name":             {"Physics"},
		"school":           {"school_1"},
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if result.Action != form.ActionSubmit {
		t.Fatalf("action = %q", result.Action)
	}
	want := map[string]string{"name": "Physics", "code": "", "school": "school_1"}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][2]string{{"school_1", "school"}}, selected); diff != "" {
		t.Fatalf("select mismatch (-want +got):\n%s", diff)
	}
	if got, _ := cell.Value("name"); got != "Physics" {
		t.Fatalf("controlled cell not updated: %q", got)
	}
}

func TestServeHTTPSubmitOutcomes(t *testing.T) {
	ok, _ := form.New(testsupport.DepartmentSchema(),
		form.WithRenderer(&recordingRenderer{}),
		form.WithRedirect("/departments"),
	)
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, postForm(url.Values{"name": {"Physics"}}))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/departments" {
		t.Fatalf("expected redirect, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	failing, _ := form.New(testsupport.DepartmentSchema(),
		form.WithRenderer(&recordingRenderer{}),
		form.WithSubmitHandler(func(context.Context, map[string]string) error { return errors.New("conflict") }),
	)
	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, postForm(url.Values{"name": {"Physics"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "name=Physics;") {
		t.Fatalf("expected posted values re-rendered: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, postForm(url.Values{render.FormIDField: {"student"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mismatched form id status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func renderedSnapshot(t *testing.T, opts render.RenderOptions) string {
	t.Helper()
	for _, field := range opts.Hidden {
		if field.Name == render.SelectedField {
			return field.Value
		}
	}
	t.Fatalf("no select snapshot in %+v", opts.Hidden)
	return ""
}

func TestHandleSelectCallbackFiresOncePerChange(t *testing.T) {
	renderer := &recordingRenderer{}
	var selected [][2]string
	f, err := form.New(testsupport.DepartmentSchema(),
		form.WithRenderer(renderer),
		form.WithSelectHandler(func(value, name string) { selected = append(selected, [2]string{value, name}) }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := f.Render(testsupport.Context()); err != nil {
		t.Fatalf("render: %v", err)
	}

	// The user picks school_1 and the page round-trips.
	if _, err := f.Handle(postForm(url.Values{
		"school":             {"school_1"},
		render.SelectedField: {renderedSnapshot(t, renderer.last())},
		render.ToggleField:   {"password"},
	})); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := renderedSnapshot(t, renderer.last()); got != "school=school_1" {
		t.Fatalf("snapshot after round-trip = %q", got)
	}

	// Submitting the unchanged select must not report a change again.
	if _, err := f.Handle(postForm(url.Values{
		"school":             {"school_1"},
		render.SelectedField: {renderedSnapshot(t, renderer.last())},
	})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([][2]string{{"school_1", "school"}}, selected); diff != "" {
		t.Fatalf("select calls mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.Handle(postForm(url.Values{
		"school":             {"school_3"},
		render.SelectedField: {"school=school_1"},
	})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([][2]string{{"school_1", "school"}, {"school_3", "school"}}, selected); diff != "" {
		t.Fatalf("select calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleKeepsOnlyPasswordNames(t *testing.T) {
	renderer := &recordingRenderer{}
	f, err := form.New(testsupport.LoginSchema(), form.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	result, err := f.Handle(postForm(url.Values{
		render.ToggleField:  {"ghost"},
		render.VisibleField: {"email,ghost,password"},
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if result.Action != form.ActionToggle {
		t.Fatalf("action = %q", result.Action)
	}
	if diff := cmp.Diff([]string{"password"}, renderer.last().State.VisiblePasswords()); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}

	if f.TogglePassword("email") {
		t.Fatalf("non-password fields cannot be revealed")
	}
}
