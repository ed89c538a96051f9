package ninject

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoAttribute matches every *AttributeError with errors.Is.
var ErrNoAttribute = errors.New("no such attribute")

// AttributeError is returned when neither the class chain nor the
// configuration can supply an attribute.
type AttributeError struct {
	Class string
	Name  string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%q object has no attribute %q", e.Class, e.Name)
}

func (e *AttributeError) Is(err error) bool {
	if err == ErrNoAttribute {
		return true
	}
	_, ok := err.(*AttributeError)
	return ok
}

func noAttribute(class, name string) error {
	return errors.WithStack(&AttributeError{Class: class, Name: name})
}

// IsAttributeError is true for errors from failed attribute lookups.
func IsAttributeError(err error) bool {
	return errors.Is(err, ErrNoAttribute)
}
