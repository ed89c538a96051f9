package ninject

import (
	"fmt"

	"go.uber.org/zap"
)

// Kwargs are the named arguments of a Func.
type Kwargs map[string]interface{}

// Func is the shape of a function that InjectConfig can decorate.
// Positional arguments pass through untouched; configuration is
// spliced into kwargs.
type Func func(args []interface{}, kwargs Kwargs) (interface{}, error)

// InjectConfig returns a decorator.  On every call of the decorated
// function each option of section that the caller did not pass in
// kwargs is cast (with DefaultCasters) and added.  Values the caller
// passed are never replaced and the caller's map is not modified.
//
// If the section does not exist a warning is logged, OnMissingSection
// callbacks run, and the function is called with its arguments as
// given.
func (in *Injector) InjectConfig(section string) func(Func) Func {
	return func(f Func) Func {
		return func(args []interface{}, kwargs Kwargs) (interface{}, error) {
			return f(args, in.injectKwargs(section, kwargs))
		}
	}
}

func (in *Injector) injectKwargs(section string, kwargs Kwargs) Kwargs {
	if !in.store.HasSection(section) {
		in.missingSection(section)
		return kwargs
	}
	options, err := in.store.Options(section)
	if err != nil {
		in.log(zap.WarnLevel, "cannot list options",
			zap.String("section", section),
			zap.Error(err))
		return kwargs
	}
	merged := make(Kwargs, len(kwargs)+len(options))
	for k, v := range kwargs {
		merged[k] = v
	}
	for _, option := range options {
		if _, ok := merged[option]; ok {
			continue
		}
		value, err := in.Cast(section, option)
		if err != nil {
			in.log(zap.WarnLevel, "cannot read option",
				zap.String("section", section),
				zap.String("option", option),
				zap.Error(err))
			continue
		}
		merged[option] = value
		in.metrics.injection(section)
		in.trace("injected option",
			zap.String("section", section),
			zap.String("option", option),
			zap.Any("value", value),
			zap.String("type", fmt.Sprintf("%T", value)))
	}
	return merged
}
