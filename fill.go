package ninject

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StructTag names the struct tag InjectStruct reads.  The first
// element overrides the option name; "-" skips the field.
const StructTag = "config"

type configTag struct {
	Name string `pt:"0"`
}

// InjectStruct is the struct form of InjectConfig: model must be a
// pointer to a struct and each exported field that still has its zero
// value is filled from the option of the same name (or the name given
// by its config tag).  Fields that are already set are left alone.
//
//	type Server struct {
//		Host    string
//		Port    int      `config:"port"`
//		Tags    []string // comma separated
//		Verbose bool     // anything ToBool accepts
//		Scratch string   `config:"-"`
//	}
//
// A missing section behaves as it does for InjectConfig: a warning, the
// OnMissingSection callbacks, and no error.  Values that cannot be
// decoded into their field are a commonerrors.ConfigurationError.
func (in *Injector) InjectStruct(section string, model interface{}) error {
	v := reflect.ValueOf(model)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return commonerrors.ProgrammerError(errors.Errorf("model must be a non-nil pointer to a struct, not %T", model))
	}
	if !in.store.HasSection(section) {
		in.missingSection(section)
		return nil
	}
	elem := v.Elem()

	values := make(map[string]interface{})
	var walkErr error
	reflectutils.WalkStructElements(elem.Type(), func(f reflect.StructField) bool {
		if walkErr != nil || !f.IsExported() {
			return false
		}
		var tag configTag
		err := reflectutils.SplitTag(f.Tag).Set().Get(StructTag).Fill(&tag)
		if err != nil {
			walkErr = commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
			return false
		}
		name := tag.Name
		switch name {
		case "-":
			return false
		case "":
			name = f.Name
		}
		if !elem.FieldByIndex(f.Index).IsZero() {
			return false
		}
		raw, err := in.store.Get(section, name)
		if err != nil || raw == nil {
			return false
		}
		values[name] = *raw
		return false
	})
	if walkErr != nil {
		return walkErr
	}
	if len(values) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           model,
		TagName:          StructTag,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToBoolHook,
			stringToSliceHook,
			stringToAnyHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return commonerrors.LibraryError(errors.Wrap(err, "build decoder"))
	}
	err = decoder.Decode(values)
	if err != nil {
		return commonerrors.ConfigurationError(errors.Wrapf(err, "section %s into %T", section, model))
	}
	for name, value := range values {
		in.metrics.injection(section)
		in.trace("injected field",
			zap.String("section", section),
			zap.String("option", name),
			zap.Any("value", value),
			zap.String("into", fmt.Sprintf("%T", model)))
	}
	return nil
}

// stringToSliceHook splits on commas and trims each element.
func stringToSliceHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	raw := reflect.ValueOf(data).String()
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

// stringToAnyHook gives interface{} fields the same value a decorated
// function would see in its kwargs.
func stringToAnyHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Interface || to.NumMethod() != 0 {
		return data, nil
	}
	return CastString(reflect.ValueOf(data).String()), nil
}
