// Package form is the form shell: it owns one schema, its value source and
// its password visibility state, renders through a render.Renderer and turns
// HTTP round-trips into toggle re-renders or submissions.
//
// A form is controlled when it is given a value source (WithValues or
// WithAccessor) and uncontrolled otherwise, in which case every control
// starts from its unwrapped defaultValue and submissions read the posted
// payload.
package form
