package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayered(t *testing.T) {
	local := NewMap()
	local.Set("web", "port", "8081")
	local.SetNoValue("web", "debug")
	shared := NewMap()
	shared.Set("web", "PORT", "80")
	shared.Set("web", "host", "example.com")
	shared.Set("db", "dsn", "postgres://")

	s := Layered(local, nil, shared)
	assert.True(t, s.HasSection("web"))
	assert.True(t, s.HasSection("db"))
	assert.False(t, s.HasSection("cache"))

	options, err := s.Options("web")
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "debug", "host"}, options)

	assert.Equal(t, "8081", value(t, s, "web", "port"))
	assert.Equal(t, "example.com", value(t, s, "web", "host"))
	assert.Equal(t, "postgres://", value(t, s, "db", "dsn"))
	v, err := s.Get("web", "debug")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = s.Get("web", "missing")
	assert.True(t, errors.Is(err, ErrNoOption))
	_, err = s.Get("cache", "size")
	assert.True(t, errors.Is(err, ErrNoSection))
	_, err = s.Options("cache")
	assert.True(t, errors.Is(err, ErrNoSection))
}

func TestLayeredSingle(t *testing.T) {
	m := NewMap()
	assert.Equal(t, Store(m), Layered(nil, m))
}

func TestEnv(t *testing.T) {
	m := NewMap()
	m.Set("web server", "port", "80")
	m.Set("web server", "host", "example.com")
	t.Setenv("MYAPP_WEB_SERVER_PORT", "9000")
	t.Setenv("MYAPP_WEB_SERVER_EXTRA", "ignored")

	s := Env("MYAPP_", m)
	assert.Equal(t, "9000", value(t, s, "web server", "port"))
	assert.Equal(t, "example.com", value(t, s, "web server", "host"))
	options, err := s.Options("web server")
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "host"}, options)
	_, err = s.Get("web server", "extra")
	assert.True(t, errors.Is(err, ErrNoOption), "env does not add options")
	assert.False(t, s.HasSection("other"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "APP_WEB_MAX_CONNS", EnvName("APP_", "web", "max-conns"))
	assert.Equal(t, "INJECTOR_LEVEL", EnvName("", "INJECTOR", "level"))
}
