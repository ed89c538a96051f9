package store

import (
	"strings"

	"github.com/mohae/deepcopy"

	"github.com/muir/ninject/internal/pointer"
)

var _ Store = &Map{}

type section struct {
	Values map[string]*string
	Order  []string
}

func newSection() *section {
	return &section{
		Values: make(map[string]*string),
	}
}

func (s *section) set(option string, value *string) {
	if _, ok := s.Values[option]; !ok {
		s.Order = append(s.Order, option)
	}
	s.Values[option] = value
}

// Map is an in-memory Store.  Option names are folded to lower case.
// Options set with SetDefault are visible in every section.
type Map struct {
	sections map[string]*section
	order    []string
	defaults *section
}

func NewMap() *Map {
	return &Map{
		sections: make(map[string]*section),
		defaults: newSection(),
	}
}

func optionKey(option string) string {
	return strings.ToLower(option)
}

// AddSection creates an empty section if it does not exist already.
func (m *Map) AddSection(name string) {
	m.section(name)
}

func (m *Map) section(name string) *section {
	if name == DefaultSection {
		return m.defaults
	}
	s, ok := m.sections[name]
	if !ok {
		s = newSection()
		m.sections[name] = s
		m.order = append(m.order, name)
	}
	return s
}

// Set defines or replaces an option.  Setting into DefaultSection is the
// same as SetDefault.
func (m *Map) Set(sectionName, option, value string) {
	m.section(sectionName).set(optionKey(option), pointer.To(value))
}

// SetNoValue defines an option that exists but has no value.
func (m *Map) SetNoValue(sectionName, option string) {
	m.section(sectionName).set(optionKey(option), nil)
}

func (m *Map) SetDefault(option, value string) {
	m.defaults.set(optionKey(option), pointer.To(value))
}

// Sections lists section names in the order they were added.  The
// default section is not included.
func (m *Map) Sections() []string {
	n := make([]string, len(m.order))
	copy(n, m.order)
	return n
}

func (m *Map) HasSection(name string) bool {
	_, ok := m.sections[name]
	return ok
}

func (m *Map) Options(name string) ([]string, error) {
	s, ok := m.sections[name]
	if !ok {
		return nil, noSection(name)
	}
	options := make([]string, len(s.Order), len(s.Order)+len(m.defaults.Order))
	copy(options, s.Order)
	for _, option := range m.defaults.Order {
		if _, ok := s.Values[option]; !ok {
			options = append(options, option)
		}
	}
	return options, nil
}

func (m *Map) Get(name, option string) (*string, error) {
	s, ok := m.sections[name]
	if !ok {
		return nil, noSection(name)
	}
	key := optionKey(option)
	if v, ok := s.Values[key]; ok {
		return v, nil
	}
	if v, ok := m.defaults.Values[key]; ok {
		return v, nil
	}
	return nil, noOption(name, option)
}

// Clone makes a deep copy that can be modified independently.
func (m *Map) Clone() *Map {
	n := &Map{
		sections: deepcopy.Copy(m.sections).(map[string]*section),
		order:    make([]string, len(m.order)),
		defaults: deepcopy.Copy(m.defaults).(*section),
	}
	copy(n.order, m.order)
	return n
}
