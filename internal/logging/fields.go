package logging

// Field name constants for structured logging.
const (
	FieldError     = "error"
	FieldCode      = "code"
	FieldNode      = "node"
	FieldTag       = "tag"
	FieldForm      = "form"
	FieldElement   = "element"
	FieldDecorator = "decorator"
	FieldSkipped   = "skipped"
	FieldStaged    = "staged"
	FieldValid     = "valid"
	FieldPath      = "path"
	FieldMethod    = "method"
	FieldAddr      = "addr"
	FieldDuration  = "duration"
	FieldVersion   = "version"
)
