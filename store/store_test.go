package store

import (
	"embed"
	"testing"

	"github.com/muir/nflex"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata
var testdata embed.FS

func value(t *testing.T, s Store, section, option string) string {
	v, err := s.Get(section, option)
	require.NoErrorf(t, err, "get %s.%s", section, option)
	require.NotNilf(t, v, "%s.%s has a value", section, option)
	return *v
}

func TestMap(t *testing.T) {
	m := NewMap()
	m.Set("web", "Port", "80")
	m.SetNoValue("web", "flag")
	m.SetDefault("timeout", "5")
	m.AddSection("other")

	assert.True(t, m.HasSection("web"))
	assert.False(t, m.HasSection("WEB"), "section names are case sensitive")
	assert.False(t, m.HasSection(DefaultSection))
	assert.Equal(t, []string{"web", "other"}, m.Sections())

	options, err := m.Options("web")
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "flag", "timeout"}, options)

	assert.Equal(t, "80", value(t, m, "web", "PORT"), "option names are case insensitive")
	assert.Equal(t, "5", value(t, m, "other", "timeout"), "inherited default")

	v, err := m.Get("web", "flag")
	require.NoError(t, err)
	assert.Nil(t, v, "no value")

	_, err = m.Get("nope", "port")
	assert.True(t, errors.Is(err, ErrNoSection), "missing section")
	_, err = m.Get("web", "nope")
	assert.True(t, errors.Is(err, ErrNoOption), "missing option")
	assert.True(t, IsNotFound(err))
	_, err = m.Options("nope")
	assert.True(t, errors.Is(err, ErrNoSection))
}

func TestMapClone(t *testing.T) {
	m := NewMap()
	m.Set("web", "port", "80")
	c := m.Clone()
	c.Set("web", "port", "81")
	c.Set("web", "host", "example.com")
	c.SetDefault("timeout", "1")

	assert.Equal(t, "80", value(t, m, "web", "port"))
	_, err := m.Get("web", "host")
	assert.True(t, errors.Is(err, ErrNoOption))
	_, err = m.Get("web", "timeout")
	assert.True(t, errors.Is(err, ErrNoOption))
	assert.Equal(t, "81", value(t, c, "web", "port"))
}

func TestHelpers(t *testing.T) {
	m := NewMap()
	m.Set("web", "port", "80")
	m.Set("web", "name", "front")
	m.SetNoValue("web", "flag")

	assert.Equal(t, "80", GetFallback(m, "web", "port", "1"))
	assert.Equal(t, "1", GetFallback(m, "web", "missing", "1"))
	assert.Equal(t, "1", GetFallback(m, "web", "flag", "1"))
	assert.Equal(t, "1", GetFallback(m, "gone", "port", "1"))

	i, err := GetInt(m, "web", "port")
	require.NoError(t, err)
	assert.Equal(t, int64(80), i)
	_, err = GetInt(m, "web", "name")
	assert.Error(t, err)
	_, err = GetInt(m, "web", "flag")
	assert.Error(t, err)
	_, err = GetInt(m, "web", "missing")
	assert.True(t, errors.Is(err, ErrNoOption))
}

func TestINI(t *testing.T) {
	data, err := testdata.ReadFile("testdata/app.ini")
	require.NoError(t, err)
	m, err := ParseINI(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"server", "Server", "empty"}, m.Sections())
	options, err := m.Options("server")
	require.NoError(t, err)
	assert.Equal(t, []string{"host", "port", "ratio", "verbose", "base", "data", "timeout"}, options)

	assert.Equal(t, "localhost", value(t, m, "server", "host"))
	assert.Equal(t, "8080", value(t, m, "server", "port"))
	assert.Equal(t, "9090", value(t, m, "Server", "port"))
	assert.Equal(t, "/srv/data", value(t, m, "server", "data"))
	assert.Equal(t, "30", value(t, m, "empty", "timeout"))

	options, err = m.Options("empty")
	require.NoError(t, err)
	assert.Equal(t, []string{"timeout"}, options)
}

func TestINIFile(t *testing.T) {
	m, err := LoadINI("testdata/app.ini")
	require.NoError(t, err)
	assert.Equal(t, "yes", value(t, m, "server", "verbose"))

	_, err = LoadINI("testdata/does-not-exist.ini")
	assert.Error(t, err)
}

func TestTOML(t *testing.T) {
	m, err := LoadTOML("testdata/app.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"server", "empty"}, m.Sections())
	options, err := m.Options("server")
	require.NoError(t, err)
	assert.Equal(t, []string{"host", "port", "ratio", "whole", "verbose", "tags", "timeout"}, options)

	assert.Equal(t, "localhost", value(t, m, "server", "host"))
	assert.Equal(t, "8080", value(t, m, "server", "port"))
	assert.Equal(t, "0.75", value(t, m, "server", "ratio"))
	assert.Equal(t, "2.0", value(t, m, "server", "whole"))
	assert.Equal(t, "true", value(t, m, "server", "verbose"))
	assert.Equal(t, "a, b", value(t, m, "server", "tags"))
	assert.Equal(t, "30", value(t, m, "empty", "timeout"))

	_, err = ParseTOML([]byte("this is = = not toml"))
	assert.Error(t, err)
}

func TestSourceFiles(t *testing.T) {
	cases := []struct {
		file     string
		sections []string
		options  []string
	}{
		{
			file:     "testdata/app.yaml",
			sections: []string{"timeout", "server", "empty"},
			options:  []string{"host", "port", "ratio", "verbose", "timeout"},
		},
		{
			file:    "testdata/app.json",
			options: []string{"host", "port", "ratio", "verbose", "unset", "timeout"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			source, err := nflex.UnmarshalFile(tc.file, nflex.WithFS(testdata))
			require.NoError(t, err, "unmarshal")
			m, err := FromSource(source, tc.sections...)
			require.NoError(t, err, "load")
			assert.True(t, m.HasSection("server"))
			options, err := m.Options("server")
			require.NoError(t, err)
			assert.Equal(t, tc.options, options)
			assert.Equal(t, "localhost", value(t, m, "server", "host"))
			assert.Equal(t, "8080", value(t, m, "server", "port"))
			assert.Equal(t, "0.75", value(t, m, "server", "ratio"))
			assert.Equal(t, "true", value(t, m, "server", "verbose"))
			assert.Equal(t, "30", value(t, m, "server", "timeout"))
		})
	}
}

func TestSourceEmptySection(t *testing.T) {
	source, err := nflex.UnmarshalFile("testdata/app.yaml", nflex.WithFS(testdata))
	require.NoError(t, err)
	m, err := FromSource(source, "server", "empty")
	require.NoError(t, err)
	assert.Equal(t, []string{"server", "empty"}, m.Sections())
	options, err := m.Options("empty")
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestSourceNull(t *testing.T) {
	m, err := LoadFile("testdata/app.json", nflex.WithFS(testdata))
	require.NoError(t, err)
	v, err := m.Get("server", "unset")
	require.NoError(t, err)
	assert.Nil(t, v)
}
