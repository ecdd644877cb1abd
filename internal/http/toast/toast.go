package toast

import (
	"encoding/gob"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const flashKey = "_toasts"

// Kind selects the toast styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Toast is one notification shown on the next rendered page. Description is
// sanitized HTML.
type Toast struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
}

func init() {
	gob.Register(Toast{})
}

// Notifier queues toasts as session flashes so they survive a redirect and
// are shown exactly once.
type Notifier struct {
	store  sessions.Store
	name   string
	policy *bluemonday.Policy
}

// NewNotifier stores toasts in the session called name.
func NewNotifier(store sessions.Store, name string) *Notifier {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "em", "i", "code", "br")
	return &Notifier{store: store, name: name, policy: policy}
}

// Push queues a toast. It must run before the response is written.
func (n *Notifier) Push(w http.ResponseWriter, r *http.Request, kind Kind, title, description string) (Toast, error) {
	t := Toast{
		ID:          xid.New().String(),
		Kind:        kind,
		Title:       strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(title)),
		Description: strings.TrimSpace(n.policy.Sanitize(description)),
	}

	sess, err := n.store.Get(r, n.name)
	if err != nil && sess == nil {
		return t, errors.WithStack(err)
	}
	sess.AddFlash(t, flashKey)
	if err := sess.Save(r, w); err != nil {
		return t, errors.WithStack(err)
	}
	return t, nil
}

// Pop drains the queued toasts.
func (n *Notifier) Pop(w http.ResponseWriter, r *http.Request) ([]Toast, error) {
	sess, err := n.store.Get(r, n.name)
	if err != nil && sess == nil {
		return nil, errors.WithStack(err)
	}
	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return nil, nil
	}
	if err := sess.Save(r, w); err != nil {
		return nil, errors.WithStack(err)
	}

	toasts := make([]Toast, 0, len(flashes))
	for _, flash := range flashes {
		if t, ok := flash.(Toast); ok {
			toasts = append(toasts, t)
		}
	}
	return toasts, nil
}
