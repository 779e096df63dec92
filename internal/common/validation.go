package common

// ValidationError carries per-field reasons for a rejected input field,
// in the order the rules were checked.
type ValidationError struct {
	Field   string
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field
}
