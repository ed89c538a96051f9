package ninject

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/AlekSi/pointer"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap/zapcore"

	"github.com/muir/ninject/store"
)

// SettingsSection is reserved for the injector itself.  It has two
// options: debug (a boolean understood by ToBool) and level (a level
// name or number, used only when debug is true).
const SettingsSection = "INJECTOR"

const defaultLevel = zapcore.InfoLevel

type rawSettings struct {
	Debug *bool   `mapstructure:"debug"`
	Level *string `mapstructure:"level"`
}

type settings struct {
	debug bool
	level zapcore.Level
}

// readSettings never fails: anything absent or unparseable leaves debug
// off and the level at info.
func readSettings(s store.Store) settings {
	conf := settings{level: defaultLevel}
	if !s.HasSection(SettingsSection) {
		return conf
	}
	raw := make(map[string]interface{})
	for _, option := range []string{"debug", "level"} {
		if v, ok := store.Lookup(s, SettingsSection, option); ok {
			raw[option] = v
		}
	}
	var decoded rawSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &decoded,
		DecodeHook: stringToBoolHook,
	})
	if err != nil {
		return conf
	}
	if decoder.Decode(raw) != nil {
		return conf
	}
	conf.debug = pointer.GetBool(decoded.Debug)
	if !conf.debug || decoded.Level == nil {
		return conf
	}
	if level, ok := parseLevel(*decoded.Level); ok {
		conf.level = level
	}
	return conf
}

func stringToBoolHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return ToBool(reflect.ValueOf(data).String())
}

// parseLevel understands numeric levels (10 debug, 20 info, 30 warn,
// 40 error, 50 critical) and level names.  Levels above error are
// clamped to error because tracing is written at the configured level
// and must not panic or exit.
func parseLevel(s string) (zapcore.Level, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		switch {
		case i <= 10:
			return zapcore.DebugLevel, true
		case i <= 20:
			return zapcore.InfoLevel, true
		case i <= 30:
			return zapcore.WarnLevel, true
		default:
			return zapcore.ErrorLevel, true
		}
	}
	switch strings.ToLower(s) {
	case "warning":
		return zapcore.WarnLevel, true
	case "critical":
		return zapcore.ErrorLevel, true
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return defaultLevel, false
	}
	if level > zapcore.ErrorLevel {
		level = zapcore.ErrorLevel
	}
	return level, true
}
