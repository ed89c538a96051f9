package ninject

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Caster converts a raw configuration string.  An error means the
// string is not of the caster's type; the next caster is tried.
type Caster func(string) (interface{}, error)

var ErrUnrecognizedBool = errors.New("unrecognized boolean")

// ToBool accepts true, t, y, yes, false, f, n, and no in any case.
// Unlike strconv.ParseBool it does not accept 1 or 0.
func ToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "y", "yes":
		return true, nil
	case "false", "f", "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrUnrecognizedBool, "failed to recognise %q", s)
	}
}

// Bool is the ToBool caster.
func Bool(s string) (interface{}, error) {
	return ToBool(s)
}

// Int yields an int.
func Int(s string) (interface{}, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return i, nil
}

// Float yields a float64.
func Float(s string) (interface{}, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// String returns its input.  Useful at the end of an explicit list.
func String(s string) (interface{}, error) {
	return s, nil
}

// decimal is Float except that integer literals are refused so that
// they can fall through to Int.
func decimal(s string) (interface{}, error) {
	if _, err := Int(s); err == nil {
		return nil, errors.Errorf("%q is an integer", s)
	}
	return Float(s)
}

// DefaultCasters is what Cast uses when no casters are given: floats
// (only for literals that are not integers), then ints, then booleans.
func DefaultCasters() []Caster {
	return []Caster{decimal, Int, Bool}
}

// As builds a caster for an arbitrary type from reflectutils' string
// setters.  Booleans use ToBool rather than strconv.ParseBool.
func As(t reflect.Type) Caster {
	if t.Kind() == reflect.Bool {
		if t == reflect.TypeOf(true) {
			return Bool
		}
		return func(s string) (interface{}, error) {
			b, err := ToBool(s)
			if err != nil {
				return nil, err
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v.Interface(), nil
		}
	}
	setter, err := reflectutils.MakeStringSetter(t)
	if err != nil {
		err = errors.Wrapf(err, "no caster for %s", t)
		return func(string) (interface{}, error) {
			return nil, err
		}
	}
	return func(s string) (interface{}, error) {
		v := reflect.New(t).Elem()
		err := setter(v, s)
		if err != nil {
			return nil, errors.Wrapf(err, "cast to %s", t)
		}
		return v.Interface(), nil
	}
}

// CasterOf is As for a type parameter:
//
//	in.Cast("server", "port", ninject.CasterOf[uint16]())
func CasterOf[T any]() Caster {
	return As(reflect.TypeOf((*T)(nil)).Elem())
}

// CastString tries each caster in order and returns the first success.
// With no casters, DefaultCasters are used.  If every caster fails the
// raw string is returned unchanged.
func CastString(raw string, casters ...Caster) interface{} {
	if len(casters) == 0 {
		casters = DefaultCasters()
	}
	for _, cast := range casters {
		if cast == nil {
			continue
		}
		v, err := cast(raw)
		if err == nil {
			return v
		}
	}
	return raw
}

// Cast looks up an option and converts it with CastString.  A missing
// section or option is an error (see store.ErrNoSection and
// store.ErrNoOption).  An option without a value yields nil, nil.
func (in *Injector) Cast(section, option string, casters ...Caster) (interface{}, error) {
	raw, err := in.store.Get(section, option)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return CastString(*raw, casters...), nil
}
