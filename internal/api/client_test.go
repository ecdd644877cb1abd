package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api", server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestListDepartmentsDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/departments" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "phy" {
			t.Errorf("search = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"Physics","code":"PHY","school":"school_1"}],"meta":{"total":1,"limit":10,"page":1}}`))
	})

	res, err := client.WithToken("tok").ListDepartments(context.Background(), "phy", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := &Envelope[[]Department]{
		Data: []Department{{ID: "1", Name: "Physics", Code: "PHY", School: "school_1"}},
		Meta: &Meta{Total: 1, Limit: 10, Page: 1},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestCreatePostsJSON(t *testing.T) {
	var body map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %q", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"42"}}`))
	})

	record, err := client.Create(context.Background(), "/departments", map[string]string{"name": "Physics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record["id"] != "42" || body["name"] != "Physics" {
		t.Fatalf("record = %v, body = %v", record, body)
	}
}

func TestErrorsCarryBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Department code already exists"}`))
	})

	_, err := client.Create(context.Background(), "/departments", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if got := Message(err, "Something went wrong"); got != "Department code already exists" {
		t.Fatalf("message = %q", got)
	}
}

func TestMessageFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "plain error", err: errors.New("dial tcp: refused")},
		{name: "empty message", err: &Error{StatusCode: 500}},
		{name: "nil", err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err, "fallback"); got != "fallback" {
				t.Fatalf("message = %q", got)
			}
		})
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := client.ListTeachers(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "" {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewClient("/api", nil); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}
