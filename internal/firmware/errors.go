package firmware

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrAttributeNotFound is matched by the error returned when a lookup
// finds no attribute with the requested name.
var ErrAttributeNotFound = errors.New("attribute not found")

// NotFoundError names the device and attribute of a failed lookup.
type NotFoundError struct {
	Device string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no attribute with name '%s'", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrAttributeNotFound
}

// EnumerationError is returned when a catalog directory cannot be listed.
// Nothing about its entries is known in that case.
type EnumerationError struct {
	Catalog string // "attributes" or "authentication"
	Device  string // device root path
	Err     error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to read %s for device at path '%s': %v", e.Catalog, e.Device, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}
