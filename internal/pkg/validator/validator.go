package validator

// Validator validates a struct and returns a V10ValidationError (or another
// error) when it does not satisfy its `validate` tags.
type Validator interface {
	Validate(data any) error
}
