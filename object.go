package ninject

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Object is anything with attributes.  The boolean is false when the
// attribute does not exist.
type Object interface {
	Attr(name string) (interface{}, bool)
}

// Instance is an object of a *Class.  Attributes resolve from the
// instance's own fields, then the Go value made by a Factory (if any),
// then the class' MRO.
//
// Instances look for a few methods on their class: String, GoString,
// Equal (called with the other object), and Hash.
type Instance struct {
	class  *Class
	fields map[string]interface{}
	order  []string
	value  interface{}
}

var _ Object = &Instance{}

func (i *Instance) Class() *Class { return i.class }

// Value is the Go value made by the class' Factory, or nil.
func (i *Instance) Value() interface{} { return i.value }

func (i *Instance) Set(name string, value interface{}) {
	if _, ok := i.fields[name]; !ok {
		i.order = append(i.order, name)
	}
	i.fields[name] = value
}

// Fields is a copy of the instance fields.
func (i *Instance) Fields() map[string]interface{} {
	m := make(map[string]interface{}, len(i.fields))
	for k, v := range i.fields {
		m[k] = v
	}
	return m
}

func (i *Instance) Attr(name string) (interface{}, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if i.value != nil {
		if v, ok := Reflect(i.value).Attr(name); ok {
			return v, true
		}
	}
	m, ok := i.class.lookup(name)
	if !ok {
		return nil, false
	}
	switch m := m.(type) {
	case Method:
		return BoundMethod(func(args ...interface{}) (interface{}, error) {
			return m(i, args...)
		}), true
	case Property:
		return m(i), true
	default:
		return bindClass(m, i.class), true
	}
}

// Dir lists fields, Go value attributes, and class members.
func (i *Instance) Dir() []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(list []string) {
		for _, name := range list {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	add(i.order)
	if i.value != nil {
		if d, ok := Reflect(i.value).(interface{ Dir() []string }); ok {
			add(d.Dir())
		}
	}
	add(i.class.Dir())
	sort.Strings(names)
	return names
}

// call runs a Method of the class.  found is false when the class has
// no such Method.
func (i *Instance) call(name string, args ...interface{}) (v interface{}, found bool, err error) {
	m, ok := i.class.lookup(name)
	if !ok {
		return nil, false, nil
	}
	method, ok := m.(Method)
	if !ok {
		return nil, false, nil
	}
	v, err = method(i, args...)
	return v, true, err
}

// String uses the class' String method.  If there is none, or it
// fails, the default rendering is used.
func (i *Instance) String() string {
	if v, found, err := i.call("String"); found && err == nil {
		return fmt.Sprint(v)
	}
	if i.value != nil {
		return fmt.Sprint(i.value)
	}
	return "<" + i.class.name + " object>"
}

// GoString is the representation: Class(field=value, ...).
func (i *Instance) GoString() string {
	if v, found, err := i.call("GoString"); found && err == nil {
		return fmt.Sprint(v)
	}
	if i.value != nil {
		return fmt.Sprintf("%s(%#v)", i.class.name, i.value)
	}
	parts := make([]string, len(i.order))
	for n, name := range i.order {
		parts[n] = fmt.Sprintf("%s=%#v", name, i.fields[name])
	}
	return i.class.name + "(" + strings.Join(parts, ", ") + ")"
}

// Equal compares class, fields and Go value unless the class has an
// Equal method.  An Equal method that fails means not equal.
func (i *Instance) Equal(other interface{}) bool {
	if v, found, err := i.call("Equal", other); found {
		if err != nil {
			return false
		}
		b, _ := v.(bool)
		return b
	}
	o, ok := other.(*Instance)
	if !ok || o == nil {
		return false
	}
	return i.class == o.class &&
		reflect.DeepEqual(i.fields, o.fields) &&
		reflect.DeepEqual(i.value, o.value)
}

// Hash uses the class' Hash method.  The boolean is false when there
// is none or it fails.
func (i *Instance) Hash() (uint64, bool) {
	v, found, err := i.call("Hash")
	if !found || err != nil {
		return 0, false
	}
	switch h := v.(type) {
	case uint64:
		return h, true
	case int:
		return uint64(h), true
	}
	return 0, false
}

// Size is the shallow size in bytes.
func (i *Instance) Size() int {
	size := int(reflect.TypeOf(*i).Size())
	if i.value != nil {
		size += int(reflect.TypeOf(i.value).Size())
	}
	return size
}

// Clone copies fields and the Go value deeply.  The class is shared.
func (i *Instance) Clone() *Instance {
	return &Instance{
		class:  i.class,
		fields: deepcopy.Copy(i.fields).(map[string]interface{}),
		order:  append([]string(nil), i.order...),
		value:  deepcopy.Copy(i.value),
	}
}

func (i *Instance) state() interface{} {
	if i.value != nil {
		return i.value
	}
	return i.fields
}

// MarshalJSON encodes the instance state: the fields, or the Go value.
func (i *Instance) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(i.state())
	return b, errors.Wrapf(err, "marshal %s", i.class.name)
}

// MarshalBinary encodes the class name with the state, enough to find
// the class again.
func (i *Instance) MarshalBinary() ([]byte, error) {
	b, err := json.Marshal(struct {
		Class string      `json:"class"`
		State interface{} `json:"state"`
	}{
		Class: i.class.name,
		State: i.state(),
	})
	return b, errors.Wrapf(err, "marshal %s", i.class.name)
}

// AttrTag renames struct fields for Reflect.  "-" hides a field.
const AttrTag = "attr"

type attrTag struct {
	Name string `pt:"0"`
}

type reflected struct {
	value interface{}
}

// Reflect exposes a Go value as an Object.  Exported struct fields
// (renamed by an attr tag) and exported methods are attributes.
// Methods come back as BoundMethods; a trailing error result is
// returned as the error.
func Reflect(v interface{}) Object {
	if o, ok := v.(Object); ok {
		return o
	}
	return reflected{value: v}
}

func (r reflected) String() string   { return fmt.Sprint(r.value) }
func (r reflected) GoString() string { return fmt.Sprintf("%#v", r.value) }

func (r reflected) Attr(name string) (interface{}, bool) {
	v := reflect.ValueOf(r.value)
	if !v.IsValid() {
		return nil, false
	}
	if m := v.MethodByName(name); m.IsValid() {
		return boundReflect(name, m), true
	}
	s := v
	for s.Kind() == reflect.Ptr {
		if s.IsNil() {
			return nil, false
		}
		s = s.Elem()
	}
	if s.Kind() != reflect.Struct {
		return nil, false
	}
	var found interface{}
	var ok bool
	reflectutils.WalkStructElements(s.Type(), func(f reflect.StructField) bool {
		if ok || !f.IsExported() {
			return false
		}
		fieldName, visible := attrName(f)
		if !visible || fieldName != name {
			return false
		}
		field, err := s.FieldByIndexErr(f.Index)
		if err != nil {
			return false
		}
		found, ok = field.Interface(), true
		return false
	})
	return found, ok
}

func (r reflected) Dir() []string {
	v := reflect.ValueOf(r.value)
	if !v.IsValid() {
		return nil
	}
	var names []string
	t := v.Type()
	for n := 0; n < t.NumMethod(); n++ {
		names = append(names, t.Method(n).Name)
	}
	s := reflectutils.NonPointer(t)
	if s.Kind() == reflect.Struct {
		reflectutils.WalkStructElements(s, func(f reflect.StructField) bool {
			if f.IsExported() {
				if name, ok := attrName(f); ok {
					names = append(names, name)
				}
			}
			return false
		})
	}
	sort.Strings(names)
	return names
}

func (r reflected) Clone() Object {
	return reflected{value: deepcopy.Copy(r.value)}
}

func attrName(f reflect.StructField) (string, bool) {
	var tag attrTag
	err := reflectutils.SplitTag(f.Tag).Set().Get(AttrTag).Fill(&tag)
	if err != nil {
		return f.Name, true
	}
	switch tag.Name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	}
	return tag.Name, true
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func boundReflect(name string, m reflect.Value) BoundMethod {
	return func(args ...interface{}) (interface{}, error) {
		t := m.Type()
		if t.IsVariadic() {
			if len(args) < t.NumIn()-1 {
				return nil, errors.Errorf("%s wants at least %d arguments, got %d", name, t.NumIn()-1, len(args))
			}
		} else if len(args) != t.NumIn() {
			return nil, errors.Errorf("%s wants %d arguments, got %d", name, t.NumIn(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for n, arg := range args {
			var want reflect.Type
			if t.IsVariadic() && n >= t.NumIn()-1 {
				want = t.In(t.NumIn() - 1).Elem()
			} else {
				want = t.In(n)
			}
			if arg == nil {
				in[n] = reflect.Zero(want)
				continue
			}
			av, ok := convertArg(reflect.ValueOf(arg), want)
			if !ok {
				return nil, errors.Errorf("%s argument %d: cannot use %T as %s", name, n, arg, want)
			}
			in[n] = av
		}
		out := m.Call(in)
		var err error
		if len(out) > 0 && t.Out(len(out)-1) == errorType {
			if e := out[len(out)-1]; !e.IsNil() {
				err = e.Interface().(error)
			}
			out = out[:len(out)-1]
		}
		switch len(out) {
		case 0:
			return nil, err
		case 1:
			return out[0].Interface(), err
		}
		results := make([]interface{}, len(out))
		for n, o := range out {
			results[n] = o.Interface()
		}
		return results, err
	}
}

type kindClass int

const (
	otherKind kindClass = iota
	boolKind
	intKind
	uintKind
	floatKind
	complexKind
	stringKind
)

func classOf(k reflect.Kind) kindClass {
	switch k {
	case reflect.Bool:
		return boolKind
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intKind
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintKind
	case reflect.Float32, reflect.Float64:
		return floatKind
	case reflect.Complex64, reflect.Complex128:
		return complexKind
	case reflect.String:
		return stringKind
	}
	return otherKind
}

// convertArg allows assignment and conversion within one kind family
// (ints to ints, floats to floats, ...) when the value fits.
func convertArg(av reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if av.Type().AssignableTo(want) {
		return av, true
	}
	class := classOf(av.Kind())
	if class == otherKind || class != classOf(want.Kind()) {
		return reflect.Value{}, false
	}
	zero := reflect.Zero(want)
	switch class {
	case intKind:
		if zero.OverflowInt(av.Int()) {
			return reflect.Value{}, false
		}
	case uintKind:
		if zero.OverflowUint(av.Uint()) {
			return reflect.Value{}, false
		}
	case floatKind:
		if zero.OverflowFloat(av.Float()) {
			return reflect.Value{}, false
		}
	case complexKind:
		if zero.OverflowComplex(av.Complex()) {
			return reflect.Value{}, false
		}
	}
	return av.Convert(want), true
}
