package ninject

import (
	"sort"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

// Method is an instance method.  Looked up through an object it is
// returned as a BoundMethod with self filled in.
type Method func(self Object, args ...interface{}) (interface{}, error)

// ClassMethod receives the class it was looked up through.  For an
// injected class that is the *ProxyClass, not the wrapped *Class.
type ClassMethod func(cls ClassRef, args ...interface{}) (interface{}, error)

// Property is evaluated on lookup through an object.
type Property func(self Object) interface{}

// BoundMethod is what lookups return for methods and class methods.
type BoundMethod func(args ...interface{}) (interface{}, error)

// Constructor initializes a new Instance.
type Constructor func(self *Instance, args ...interface{}) error

// Factory builds the Go value behind a new Instance.  The value's
// exported fields and methods become attributes (see Reflect).
type Factory func(args ...interface{}) (interface{}, error)

// ClassRef is implemented by *Class and *ProxyClass.
type ClassRef interface {
	Name() string
	Get(name string) (interface{}, error)
	SetStatic(name string, value interface{})
}

var (
	_ ClassRef = &Class{}
	_ ClassRef = &ProxyClass{}
)

// Class is an explicit member table plus an explicit list of bases.
// Attribute resolution walks MRO(), the C3 linearization of the
// bases, most derived first.
//
// Classes are built once, before use:
//
//	parent := ninject.NewClass("Parent").Static("PARENT_VAR", "Hello world!")
//	test := ninject.NewClass("Test", parent).
//		Static("DEFAULT_TMP", "Nope").
//		Init(func(self *ninject.Instance, args ...interface{}) error {
//			self.Set("tmp", args[0])
//			return nil
//		}).
//		Method("a", func(self ninject.Object, _ ...interface{}) (interface{}, error) {
//			v, _ := self.Attr("tmp")
//			return v, nil
//		})
type Class struct {
	name    string
	bases   []*Class
	members map[string]interface{}
	order   []string
	init    Constructor
	factory Factory
	mro     []*Class
	mroErr  error
}

func NewClass(name string, bases ...*Class) *Class {
	c := &Class{
		name:    name,
		bases:   bases,
		members: make(map[string]interface{}),
	}
	c.mro, c.mroErr = c.linearize()
	return c
}

func (c *Class) Name() string { return c.name }

func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

func (c *Class) add(name string, member interface{}) *Class {
	if _, ok := c.members[name]; !ok {
		c.order = append(c.order, name)
	}
	c.members[name] = member
	return c
}

// Static adds a plain class variable.  Functions added this way are
// returned as-is by lookups, like static methods.
func (c *Class) Static(name string, value interface{}) *Class { return c.add(name, value) }

func (c *Class) Method(name string, m Method) *Class { return c.add(name, m) }

func (c *Class) ClassMethod(name string, m ClassMethod) *Class { return c.add(name, m) }

func (c *Class) Property(name string, p Property) *Class { return c.add(name, p) }

// Init sets the constructor used by New.  Subclasses without their own
// constructor inherit it.
func (c *Class) Init(f Constructor) *Class {
	c.init = f
	return c
}

// Factory makes New wrap Go values.  It is inherited like Init; the
// most derived of the two wins.
func (c *Class) Factory(f Factory) *Class {
	c.factory = f
	return c
}

// SetStatic replaces (or adds) a class variable.
func (c *Class) SetStatic(name string, value interface{}) {
	c.add(name, value)
}

// Own looks only at this class' member table.
func (c *Class) Own(name string) (interface{}, bool) {
	m, ok := c.members[name]
	return m, ok
}

// MRO returns the method resolution order, starting with c.  An
// inconsistent hierarchy is a commonerrors.ProgrammerError.
func (c *Class) MRO() ([]*Class, error) {
	if c.mroErr != nil {
		return nil, c.mroErr
	}
	return append([]*Class(nil), c.mro...), nil
}

func (c *Class) linearize() ([]*Class, error) {
	seqs := make([][]*Class, 0, len(c.bases)+1)
	for _, base := range c.bases {
		if base == nil {
			return nil, commonerrors.ProgrammerError(errors.Errorf("class %s has a nil base", c.name))
		}
		mro, err := base.MRO()
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, mro)
	}
	seqs = append(seqs, append([]*Class(nil), c.bases...))

	result := []*Class{c}
	for {
		remaining := seqs[:0]
		for _, seq := range seqs {
			if len(seq) > 0 {
				remaining = append(remaining, seq)
			}
		}
		seqs = remaining
		if len(seqs) == 0 {
			return result, nil
		}
		var head *Class
		for _, seq := range seqs {
			if !inTail(seq[0], seqs) {
				head = seq[0]
				break
			}
		}
		if head == nil {
			return nil, commonerrors.ProgrammerError(errors.Errorf(
				"cannot create a consistent method resolution order for bases of %s", c.name))
		}
		result = append(result, head)
		for i, seq := range seqs {
			if seq[0] == head {
				seqs[i] = seq[1:]
			}
		}
	}
}

func inTail(c *Class, seqs [][]*Class) bool {
	for _, seq := range seqs {
		for _, other := range seq[1:] {
			if other == c {
				return true
			}
		}
	}
	return false
}

// lookup finds the first class in the MRO that has name.
func (c *Class) lookup(name string) (interface{}, bool) {
	for _, k := range c.mro {
		if m, ok := k.members[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Get resolves a class-level attribute.  Class methods come back bound
// to c.  Methods and properties come back unbound, as their raw
// Method or Property value.
func (c *Class) Get(name string) (interface{}, error) {
	if c.mroErr != nil {
		return nil, c.mroErr
	}
	m, ok := c.lookup(name)
	if !ok {
		return nil, noAttribute(c.name, name)
	}
	return bindClass(m, c), nil
}

// Dir lists every member name visible through the class.
func (c *Class) Dir() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, k := range c.mro {
		for _, name := range k.order {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func bindClass(member interface{}, cls ClassRef) interface{} {
	if m, ok := member.(ClassMethod); ok {
		return BoundMethod(func(args ...interface{}) (interface{}, error) {
			return m(cls, args...)
		})
	}
	return member
}

// New creates an instance, running the first constructor (or factory)
// found along the MRO.  Without either, arguments are an error.
func (c *Class) New(args ...interface{}) (*Instance, error) {
	if c.mroErr != nil {
		return nil, c.mroErr
	}
	instance := &Instance{
		class:  c,
		fields: make(map[string]interface{}),
	}
	for _, k := range c.mro {
		switch {
		case k.factory != nil:
			v, err := k.factory(args...)
			if err != nil {
				return nil, errors.Wrapf(err, "construct %s", c.name)
			}
			instance.value = v
			return instance, nil
		case k.init != nil:
			err := k.init(instance, args...)
			if err != nil {
				return nil, errors.Wrapf(err, "construct %s", c.name)
			}
			return instance, nil
		}
	}
	if len(args) != 0 {
		return nil, commonerrors.ProgrammerError(errors.Errorf("%s takes no arguments", c.name))
	}
	return instance, nil
}
