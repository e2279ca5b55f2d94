package resolver

import (
	"fmt"

	dErrors "onsightnow/pkg/domain-errors"
)

// ResolutionFailure reports the step at which a chain could not be walked.
// Err is a resolution_failed domain error wrapping the record store failure,
// so dErrors.HasCode matches both resolution_failed and the store's own code.
type ResolutionFailure struct {
	Step       int // zero-based index into the chain
	EntityType string
	ID         string
	Err        error
}

func (e *ResolutionFailure) Error() string {
	return fmt.Sprintf("resolution failed at step %d (%s %q): %v", e.Step, e.EntityType, e.ID, e.Err)
}

func (e *ResolutionFailure) Unwrap() error {
	return e.Err
}

// Details exposes the failing step for error responses.
func (e *ResolutionFailure) Details() map[string]any {
	return map[string]any{
		"step":        e.Step,
		"entity_type": e.EntityType,
		"id":          e.ID,
	}
}

func newFailure(step int, entityType, id string, cause error, msg string) *ResolutionFailure {
	var err error
	if cause != nil {
		err = dErrors.WrapAs(cause, dErrors.CodeResolution, msg)
	} else {
		err = dErrors.New(dErrors.CodeResolution, msg)
	}
	return &ResolutionFailure{Step: step, EntityType: entityType, ID: id, Err: err}
}
