package ninject

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/mohae/deepcopy"
	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/muir/ninject/internal/pointer"
)

// InjectStatics returns a decorator that wraps a class so that its
// class-level attributes can come from section.
//
// Class-level lookups (ProxyClass.Get) walk the wrapped class' MRO.
// A non-empty option in section is cast and kept as a candidate, but
// the first class in the chain that has the attribute natively still
// wins.  The configured value is only used when the attribute is not
// defined anywhere in the chain.  Instance-level lookups never consult
// the configuration.
func (in *Injector) InjectStatics(section string) func(*Class) *ProxyClass {
	return func(c *Class) *ProxyClass {
		return &ProxyClass{
			injector: in,
			section:  section,
			class:    c,
		}
	}
}

type ProxyClass struct {
	injector *Injector
	section  string
	class    *Class
}

func (p *ProxyClass) Name() string { return p.class.Name() }

// Class is the wrapped class.
func (p *ProxyClass) Class() *Class { return p.class }

func (p *ProxyClass) Section() string { return p.section }

// SetStatic writes through to the wrapped class.
func (p *ProxyClass) SetStatic(name string, value interface{}) {
	p.class.SetStatic(name, value)
}

// New constructs one instance of the wrapped class with args and
// wraps it.
func (p *ProxyClass) New(args ...interface{}) (*Proxy, error) {
	inner, err := p.class.New(args...)
	if err != nil {
		return nil, err
	}
	return &Proxy{
		class: p,
		inner: inner,
	}, nil
}

// Get resolves a class-level attribute.  Class methods are bound to p.
func (p *ProxyClass) Get(name string) (interface{}, error) {
	mro, err := p.class.MRO()
	if err != nil {
		return nil, err
	}
	in := p.injector
	raw, configured := in.configured(p.section, name)

	var candidate interface{}
	var haveCandidate bool
	for _, c := range mro {
		if c == p.class && configured {
			candidate, err = in.Cast(p.section, name)
			haveCandidate = err == nil
		}
		if member, ok := c.Own(name); ok {
			in.metrics.classLookup(p.section, "native")
			in.trace("class attribute",
				zap.String("class", p.class.Name()),
				zap.String("attribute", name),
				zap.String("from", c.Name()),
				zap.Any("value", member))
			return bindClass(member, p), nil
		}
	}
	if haveCandidate {
		in.metrics.classLookup(p.section, "config")
		in.trace("class attribute",
			zap.String("class", p.class.Name()),
			zap.String("attribute", name),
			zap.String("section", p.section),
			zap.String("raw", raw),
			zap.Any("value", candidate))
		return candidate, nil
	}
	return nil, noAttribute(p.class.Name(), name)
}

// configured reports whether section has a non-empty value for option.
func (in *Injector) configured(section, option string) (string, bool) {
	raw, err := in.store.Get(section, option)
	if err != nil {
		return "", false
	}
	v := pointer.Value(raw)
	return v, v != ""
}

// Dir lists the wrapped class' members.
func (p *ProxyClass) Dir() []string { return p.class.Dir() }

// IsInstance is true only for instances whose class is exactly the
// wrapped class.  Proxies and instances of subclasses are not.
func (p *ProxyClass) IsInstance(v interface{}) bool {
	i, ok := v.(*Instance)
	return ok && i != nil && i.class == p.class
}

// Proxy owns one instance of the wrapped class and delegates to it.
type Proxy struct {
	class *ProxyClass
	inner Object
}

var (
	_ Object                   = &Proxy{}
	_ fmt.Formatter            = &Proxy{}
	_ json.Marshaler           = &Proxy{}
	_ encoding.BinaryMarshaler = &Proxy{}
)

// Inner is the wrapped instance.
func (p *Proxy) Inner() Object { return p.inner }

func (p *Proxy) Class() *ProxyClass { return p.class }

// Get resolves an instance attribute: the proxy's own members first,
// then the inner object.  Methods of the inner object come back bound
// to it.
func (p *Proxy) Get(name string) (interface{}, error) {
	if v, ok := p.own(name); ok {
		return v, nil
	}
	v, ok := p.inner.Attr(name)
	if !ok {
		return nil, noAttribute(p.class.Name(), name)
	}
	p.class.injector.trace("instance attribute",
		zap.String("class", p.class.Name()),
		zap.String("attribute", name),
		zap.Any("value", v))
	return v, nil
}

func (p *Proxy) Attr(name string) (interface{}, bool) {
	v, err := p.Get(name)
	return v, err == nil
}

func (p *Proxy) own(name string) (interface{}, bool) {
	noArgs := func(f func() interface{}) BoundMethod {
		return func(...interface{}) (interface{}, error) { return f(), nil }
	}
	switch name {
	case "Inner":
		return p.inner, true
	case "Class":
		return p.class, true
	case "String":
		return noArgs(func() interface{} { return p.String() }), true
	case "GoString":
		return noArgs(func() interface{} { return p.GoString() }), true
	case "Hash":
		return noArgs(func() interface{} { return p.Hash() }), true
	case "Size":
		return noArgs(func() interface{} { return p.Size() }), true
	case "Dir":
		return noArgs(func() interface{} { return p.Dir() }), true
	case "Equal":
		return BoundMethod(func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.Errorf("Equal wants 1 argument, got %d", len(args))
			}
			return p.Equal(args[0]), nil
		}), true
	case "IsInstance":
		return BoundMethod(func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.Errorf("IsInstance wants 1 argument, got %d", len(args))
			}
			return p.class.IsInstance(args[0]), nil
		}), true
	case "MarshalJSON":
		return BoundMethod(func(...interface{}) (interface{}, error) { return p.MarshalJSON() }), true
	case "MarshalBinary":
		return BoundMethod(func(...interface{}) (interface{}, error) { return p.MarshalBinary() }), true
	}
	return nil, false
}

// Call looks up name and calls it.
func (p *Proxy) Call(name string, args ...interface{}) (interface{}, error) {
	v, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	switch f := v.(type) {
	case BoundMethod:
		return f(args...)
	case func(...interface{}) (interface{}, error):
		return f(args...)
	}
	return nil, commonerrors.UsageError(errors.Errorf("%s.%s is a %T, not a method", p.class.Name(), name, v))
}

func unwrap(v interface{}) interface{} {
	if p, ok := v.(*Proxy); ok && p != nil {
		return p.inner
	}
	return v
}

// Equal compares the inner objects.  A proxy on either side is
// unwrapped.
func (p *Proxy) Equal(other interface{}) bool {
	other = unwrap(other)
	if e, ok := p.inner.(interface{ Equal(interface{}) bool }); ok {
		return e.Equal(other)
	}
	return reflect.DeepEqual(p.inner, other)
}

func (p *Proxy) NotEqual(other interface{}) bool { return !p.Equal(other) }

func (p *Proxy) String() string { return fmt.Sprint(p.inner) }

func (p *Proxy) GoString() string { return fmt.Sprintf("%#v", p.inner) }

// Format applies the verb to the inner object.
func (p *Proxy) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), p.inner)
}

// Hash is the inner object's hash when it has one, otherwise an xxhash
// of its binary or JSON form (map keys sorted), and only as a last
// resort of its representation.
func (p *Proxy) Hash() uint64 {
	switch h := p.inner.(type) {
	case interface{ Hash() (uint64, bool) }:
		if v, ok := h.Hash(); ok {
			return v
		}
	case interface{ Hash() uint64 }:
		return h.Hash()
	}
	if m, ok := p.inner.(encoding.BinaryMarshaler); ok {
		if b, err := m.MarshalBinary(); err == nil {
			return xxhash.Sum64(b)
		}
	}
	if b, err := json.Marshal(p.inner); err == nil {
		return xxhash.Sum64(b)
	}
	return xxhash.Sum64String(p.GoString())
}

func (p *Proxy) Size() int {
	if s, ok := p.inner.(interface{ Size() int }); ok {
		return s.Size()
	}
	return int(reflect.TypeOf(p.inner).Size())
}

func (p *Proxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.inner)
}

func (p *Proxy) MarshalBinary() ([]byte, error) {
	if m, ok := p.inner.(encoding.BinaryMarshaler); ok {
		return m.MarshalBinary()
	}
	return nil, errors.Errorf("%s cannot be marshaled to binary", p.class.Name())
}

// Dir lists the inner object's attributes.
func (p *Proxy) Dir() []string {
	if d, ok := p.inner.(interface{ Dir() []string }); ok {
		return d.Dir()
	}
	return nil
}

// Clone is a new proxy around a deep copy of the inner object.
func (p *Proxy) Clone() *Proxy {
	var inner Object
	switch i := p.inner.(type) {
	case *Instance:
		inner = i.Clone()
	case interface{ Clone() Object }:
		inner = i.Clone()
	default:
		inner = deepcopy.Copy(p.inner).(Object)
	}
	return &Proxy{
		class: p.class,
		inner: inner,
	}
}
