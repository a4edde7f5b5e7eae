package types

// ValidationResult contains the result of validating a single body against
// a JSON Schema.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
