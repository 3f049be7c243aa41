package conv

import (
	"errors"
	"fmt"
)

// MappingError represents conversion failure with the context it happened in
type MappingError struct {
	Context *Context
	Err     error
	//reported is set once the fault has been counted
	reported bool
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%v[ctx: %v]", e.Err, e.Context)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Fault wraps err with context, an error already carrying a context is returned unchanged
func Fault(ctx *Context, err error) error {
	if err == nil {
		return nil
	}
	var mappingErr *MappingError
	if errors.As(err, &mappingErr) {
		return err
	}
	return &MappingError{Context: ctx, Err: err}
}
