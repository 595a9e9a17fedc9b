package llm

import "fmt"

// MalformedGenerationError reports model output that could not be parsed into
// the shape the caller asked for.
type MalformedGenerationError struct {
	Expected string
	Got      string
}

func (e *MalformedGenerationError) Error() string {
	return fmt.Sprintf("malformed model output: expected %s", e.Expected)
}
