package vein

import "fmt"

// DefinitionError is returned for a vein definition that could not be decoded. The definition is dropped while the
// other definitions of the same reload are still registered.
type DefinitionError struct {
	// ID is the identifier of the definition.
	ID  string
	Err error
}

// Error ...
func (e *DefinitionError) Error() string {
	return fmt.Sprintf("vein %v: %v", e.ID, e.Err)
}

// Unwrap ...
func (e *DefinitionError) Unwrap() error {
	return e.Err
}
