package components

import "github.com/goliatone/go-batmanform/pkg/model"

// Component names used by the default registry. They match the normalised
// field types.
const (
	NameText     = string(model.FieldTypeText)
	NameEmail    = string(model.FieldTypeEmail)
	NamePassword = string(model.FieldTypePassword)
	NameSelect   = string(model.FieldTypeSelect)
	NameTextarea = string(model.FieldTypeTextarea)
	NameSubmit   = string(model.FieldTypeSubmit)
	NameReset    = string(model.FieldTypeReset)
)
