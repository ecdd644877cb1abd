package url

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
)

type URL = url.URL

var Parse = url.Parse

// MutationFunc edits a cloned URL.
type MutationFunc func(u *url.URL)

// Mutate applies funcs to a copy of u.
func Mutate(u *url.URL, funcs ...MutationFunc) *url.URL {
	cloned := clone(u)
	for _, fn := range funcs {
		fn(cloned)
	}
	return cloned
}

// Action is the query-string operation performed by ModifyParams.
type Action string

const (
	ActionSet    Action = "set"
	ActionDelete Action = "delete"
	ActionAppend Action = "append"
)

// ModifyParams applies one action to the query of u and returns the encoded
// query string. Delete removes every value of key; an unknown action leaves
// the query unchanged.
func ModifyParams(u *url.URL, action Action, key, value string) string {
	var fn MutationFunc
	switch action {
	case ActionSet:
		fn = WithValue(key, value)
	case ActionDelete:
		fn = WithoutValues(key, "*")
	case ActionAppend:
		fn = WithValues(key, value)
	default:
		fn = func(*url.URL) {}
	}
	return Mutate(u, fn).Query().Encode()
}

func keyValuesToValues(kv []string) url.Values {
	if len(kv)%2 != 0 {
		panic(errors.New("expected pair number of key/values"))
	}

	values := make(url.Values)
	for idx := 0; idx < len(kv); idx += 2 {
		values.Add(kv[idx], kv[idx+1])
	}
	return values
}

// WithValue replaces every value of key.
func WithValue(key, value string) MutationFunc {
	return func(u *url.URL) {
		query := u.Query()
		query.Set(key, value)
		u.RawQuery = query.Encode()
	}
}

// WithValues appends key/value pairs.
func WithValues(kv ...string) MutationFunc {
	values := keyValuesToValues(kv)

	return func(u *url.URL) {
		query := u.Query()
		for k, vv := range values {
			for _, v := range vv {
				query.Add(k, v)
			}
		}
		u.RawQuery = query.Encode()
	}
}

// WithValuesReset drops the whole query.
func WithValuesReset() MutationFunc {
	return func(u *url.URL) {
		u.RawQuery = ""
	}
}

// WithoutValues removes matching key/value pairs. A "*" value removes the key.
func WithoutValues(kv ...string) MutationFunc {
	toDelete := keyValuesToValues(kv)

	return func(u *url.URL) {
		query := u.Query()

		for key, deletions := range toDelete {
			if _, exists := query[key]; !exists {
				continue
			}
			for _, d := range deletions {
				if d == "*" {
					query.Del(key)
					break
				}
				query[key] = slices.DeleteFunc(query[key], func(value string) bool {
					return value == d
				})
			}
			if len(query[key]) == 0 {
				query.Del(key)
			}
		}
		u.RawQuery = query.Encode()
	}
}

// WithPath replaces the path with the joined elements.
func WithPath(paths ...string) MutationFunc {
	return func(u *url.URL) {
		u.Path = path.Join(paths...)
	}
}

// WithPathf replaces the path with a formatted one.
func WithPathf(format string, params ...any) MutationFunc {
	return func(u *url.URL) {
		u.Path = path.Join(fmt.Sprintf(format, params...))
	}
}

func clone[T any](v *T) *T {
	copied := *v
	return &copied
}
