package validator

// Validator validates structs using their validate tags.
type Validator interface {
	// Validate returns nil when data passes, or an error carrying the
	// per-field failures.
	Validate(data any) error
}
