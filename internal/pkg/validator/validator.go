package validator

// Validator validates a struct and returns a descriptive error when it fails.
type Validator interface {
	Validate(data any) error
}
