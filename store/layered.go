package store

import (
	"github.com/pkg/errors"
)

type layered struct {
	stores []Store
}

var _ Store = layered{}

// Layered combines stores.  For each option the first store that
// defines it wins.  A section exists if any store has it and its options
// are the union, in order of first appearance.  Nil stores are skipped.
func Layered(stores ...Store) Store {
	notNil := make([]Store, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			notNil = append(notNil, s)
		}
	}
	if len(notNil) == 1 {
		return notNil[0]
	}
	return layered{stores: notNil}
}

func (l layered) HasSection(section string) bool {
	for _, s := range l.stores {
		if s.HasSection(section) {
			return true
		}
	}
	return false
}

func (l layered) Options(section string) ([]string, error) {
	var combined []string
	var able int
	seen := make(map[string]struct{})
	for _, s := range l.stores {
		if !s.HasSection(section) {
			continue
		}
		options, err := s.Options(section)
		if err != nil {
			return nil, err
		}
		able++
		for _, option := range options {
			key := optionKey(option)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			combined = append(combined, option)
		}
	}
	if able == 0 {
		return nil, noSection(section)
	}
	return combined, nil
}

func (l layered) Get(section, option string) (*string, error) {
	var sectionFound bool
	for _, s := range l.stores {
		v, err := s.Get(section, option)
		switch {
		case err == nil:
			return v, nil
		case errors.Is(err, ErrNoOption):
			sectionFound = true
		case errors.Is(err, ErrNoSection):
		default:
			return nil, err
		}
	}
	if sectionFound {
		return nil, noOption(section, option)
	}
	return nil, noSection(section)
}
