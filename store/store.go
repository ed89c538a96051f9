package store

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/muir/ninject/internal/pointer"
)

var (
	ErrNoSection = errors.New("no such section")
	ErrNoOption  = errors.New("no such option")
)

// DefaultSection is the INI section whose options every other section
// inherits.
const DefaultSection = "DEFAULT"

// Store is read-only access to sectioned configuration.
type Store interface {
	HasSection(section string) bool
	// Options lists the option names of a section in definition order.
	Options(section string) ([]string, error)
	// Get returns the raw value.  A nil value with a nil error means the
	// option exists but has no value.
	Get(section, option string) (*string, error)
}

func noSection(section string) error {
	return errors.Wrapf(ErrNoSection, "section %q", section)
}

func noOption(section, option string) error {
	return errors.Wrapf(ErrNoOption, "option %q in section %q", option, section)
}

// IsNotFound reports whether err came from a missing section or option.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoSection) || errors.Is(err, ErrNoOption)
}

// Lookup returns the value of an option and whether it has one.
func Lookup(s Store, section, option string) (string, bool) {
	v, err := s.Get(section, option)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

// GetFallback is Get with a default for missing or valueless options.
func GetFallback(s Store, section, option, fallback string) string {
	v, err := s.Get(section, option)
	if err != nil {
		return fallback
	}
	return pointer.ValueOr(v, fallback)
}

func GetInt(s Store, section, option string) (int64, error) {
	v, err := s.Get(section, option)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, errors.Errorf("option %q in section %q has no value", option, section)
	}
	i, err := strconv.ParseInt(*v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "option %q in section %q", option, section)
	}
	return i, nil
}
