package vanilla

// ChromeClass is a typed identifier for the structural CSS classes the
// renderer emits around controls.
type ChromeClass string

const (
	ClassForm          ChromeClass = "batman-form"
	ClassField         ChromeClass = "batman-field"
	ClassLabel         ChromeClass = "batman-label"
	ClassLabelRequired ChromeClass = "batman-label--required"
	ClassGrid          ChromeClass = "grid gap-4"
)
