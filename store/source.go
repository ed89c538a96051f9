package store

import (
	"strconv"

	"github.com/muir/nflex"
	"github.com/pkg/errors"

	"github.com/muir/ninject/internal/pointer"
)

// LoadFile reads a YAML or JSON file (chosen by extension).  Use
// nflex.WithFS to read from something other than the local filesystem.
func LoadFile(path string, opts ...nflex.UnmarshalFileArg) (*Map, error) {
	source, err := nflex.UnmarshalFile(path, opts...)
	if err != nil {
		return nil, err
	}
	m, err := FromSource(source)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

// FromSource copies an nflex.Source into a Map.  Top-level maps are
// sections and their scalar keys are options.  A null option is an
// option without a value.  Top-level scalars become defaults.  Lists and
// deeper nesting are skipped.
//
// Only the named top-level keys are copied when names are given;
// otherwise every top-level key is.
func FromSource(source nflex.Source, names ...string) (*Map, error) {
	m := NewMap()
	if len(names) == 0 {
		var err error
		names, err = source.Keys()
		if err != nil {
			return nil, errors.Wrap(err, "top level keys")
		}
	}
	for _, name := range names {
		if source.Type(name) == nflex.Nil {
			continue
		}
		options, err := source.Keys(name)
		if err != nil {
			// not a map
			if value, ok := scalar(source, name); ok && value != nil {
				m.SetDefault(name, *value)
			}
			continue
		}
		m.AddSection(name)
		for _, option := range options {
			value, ok := scalar(source, name, option)
			switch {
			case !ok:
			case value == nil:
				m.SetNoValue(name, option)
			default:
				m.Set(name, option, *value)
			}
		}
	}
	return m, nil
}

// scalar renders a leaf as a string.  The bool is false for anything
// that is not a scalar.
func scalar(source nflex.Source, keys ...string) (*string, bool) {
	switch source.Type(keys...) {
	case nflex.Nil:
		return nil, true
	case nflex.Int:
		if i, err := source.GetInt(keys...); err == nil {
			return pointer.To(strconv.FormatInt(i, 10)), true
		}
	case nflex.Float:
		if f, err := source.GetFloat(keys...); err == nil {
			return pointer.To(formatFloat(f)), true
		}
	case nflex.Bool:
		if b, err := source.GetBool(keys...); err == nil {
			return pointer.To(strconv.FormatBool(b)), true
		}
	case nflex.Map, nflex.Slice:
		return nil, false
	}
	s, err := source.GetString(keys...)
	if err != nil {
		return nil, false
	}
	return pointer.To(s), true
}
