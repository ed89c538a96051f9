package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// LoadTOML reads a TOML file.  Top-level tables become sections and
// their scalar keys become options.  Top-level scalars are defaults
// inherited by every section.  Arrays are joined with ", ".  Nested
// tables are ignored.
func LoadTOML(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	m, err := ParseTOML(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

func ParseTOML(data []byte) (*Map, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(err, "toml")
	}
	m := NewMap()
	// md.Keys() preserves document order, the decoded map does not
	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			value := raw[key[0]]
			if _, isTable := value.(map[string]interface{}); isTable {
				m.AddSection(key[0])
				continue
			}
			if s, ok := formatScalar(value); ok {
				m.SetDefault(key[0], s)
			}
		case 2:
			table, isTable := raw[key[0]].(map[string]interface{})
			if !isTable {
				continue
			}
			if s, ok := formatScalar(table[key[1]]); ok {
				m.Set(key[0], key[1], s)
			}
		}
	}
	return m, nil
}

// formatScalar renders a decoded value the way it would be written in an
// INI file.
func formatScalar(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return formatFloat(v), true
	case bool:
		return strconv.FormatBool(v), true
	case map[string]interface{}, []map[string]interface{}:
		return "", false
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := formatScalar(e)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// formatFloat keeps a decimal point on integral values so that the value
// still reads back as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
