package store

import (
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// LoadINI reads INI data.  Each source can be a file name, a []byte, or
// an io.Reader; later sources override earlier ones.
//
// Options in the DEFAULT section are inherited by every other section
// and DEFAULT itself is not reported as a section.  Values may refer to
// other options of the same section with %(name)s.
func LoadINI(source interface{}, others ...interface{}) (*Map, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, source, others...)
	if err != nil {
		return nil, errors.Wrap(err, "load ini")
	}
	return fromINI(f), nil
}

// ParseINI is LoadINI for a single in-memory document.
func ParseINI(data []byte) (*Map, error) {
	return LoadINI(data)
}

func fromINI(f *ini.File) *Map {
	m := NewMap()
	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			for _, key := range sec.Keys() {
				m.SetDefault(key.Name(), key.String())
			}
			continue
		}
		m.AddSection(name)
		for _, key := range sec.Keys() {
			m.Set(name, key.Name(), key.String())
		}
	}
	return m
}
