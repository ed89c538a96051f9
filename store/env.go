package store

import (
	"os"
	"strings"
)

type envStore struct {
	prefix string
	base   Store
	lookup func(string) (string, bool)
}

var _ Store = envStore{}

// Env overlays environment variables on an existing store.  An option
// that the base store defines is replaced by the variable named by
// EnvName, if that variable is set.  Env never adds sections or options.
func Env(prefix string, base Store) Store {
	return envStore{
		prefix: prefix,
		base:   base,
		lookup: os.LookupEnv,
	}
}

// EnvName is the variable consulted for an option: the prefix followed
// by SECTION_OPTION, upper case, with anything other than letters and
// digits turned into underscores.
func EnvName(prefix, section, option string) string {
	return prefix + envSafe(section) + "_" + envSafe(option)
}

func envSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

func (e envStore) HasSection(section string) bool { return e.base.HasSection(section) }

func (e envStore) Options(section string) ([]string, error) { return e.base.Options(section) }

func (e envStore) Get(section, option string) (*string, error) {
	v, err := e.base.Get(section, option)
	if err != nil {
		return nil, err
	}
	if value, ok := e.lookup(EnvName(e.prefix, section, option)); ok {
		return &value, nil
	}
	return v, nil
}
