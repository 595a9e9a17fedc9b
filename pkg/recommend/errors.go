package recommend

import (
	"fmt"
	"time"
)

// SchemaViolationError reports parseable JSON whose shape breaks a
// recommendation invariant (count, id set, type sequence, point counts).
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("recommendations violate schema: %d issue(s), first: %s", len(e.Violations), e.Violations[0])
}

// SynthesisTimeoutError reports that the synthesis call exceeded its deadline.
// No partial result exists.
type SynthesisTimeoutError struct {
	Limit time.Duration
}

func (e *SynthesisTimeoutError) Error() string {
	return fmt.Sprintf("recommendation synthesis exceeded %s", e.Limit)
}
