package render

import (
	"sort"
	"sync"
)

// State holds the ephemeral UI state of one form instance: password
// visibility keyed by field name. Distinct forms must not share a State.
type State struct {
	mu      sync.Mutex
	visible map[string]bool
}

// NewState returns an empty state where every password is masked.
func NewState() *State {
	return &State{visible: make(map[string]bool)}
}

// TogglePassword flips the visibility of the named password field and returns
// the new value.
func (s *State) TogglePassword(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible == nil {
		s.visible = make(map[string]bool)
	}
	next := !s.visible[name]
	if next {
		s.visible[name] = true
	} else {
		delete(s.visible, name)
	}
	return next
}

// SetPasswordVisible forces the visibility of the named field.
func (s *State) SetPasswordVisible(name string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible == nil {
		s.visible = make(map[string]bool)
	}
	if visible {
		s.visible[name] = true
		return
	}
	delete(s.visible, name)
}

// PasswordVisible reports whether the named field renders in clear text. A nil
// state reports false.
func (s *State) PasswordVisible(name string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible[name]
}

// VisiblePasswords returns the sorted names of revealed password fields.
func (s *State) VisiblePasswords() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.visible))
	for name := range s.visible {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset masks every password field again.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.visible)
}
