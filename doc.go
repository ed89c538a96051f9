// Obligatory // comment

/*
Package ninject injects configuration into function calls, structs,
and class attribute lookups.

Configuration comes from a store.Store: sections of string options,
INI style.  The store package has loaders for INI, TOML, YAML and
JSON plus layering and environment overrides.  Create an Injector
with New and pass it to whatever needs configuration.  There is no
global state.

	s, err := store.LoadINI("app.ini")
	in, err := ninject.New(s, ninject.WithLogger(logger))

Values are strings until they are cast.  Cast tries casters in order
and returns the first success, or the raw string if none work.  The
default order is float (only for literals that are not integers), int,
then bool.  Booleans are true, t, y, yes, false, f, n, no in any case.

Functions

InjectConfig decorates a Func.  Every option in the section that the
caller did not pass is cast and added to kwargs:

	connect := in.InjectConfig("server")(func(args []interface{}, kw ninject.Kwargs) (interface{}, error) {
		return dial(kw["host"].(string), kw["port"].(int))
	})
	connect(nil, ninject.Kwargs{"port": 9000}) // host from config, port 9000

InjectStruct does the same for the zero-valued fields of a struct.

Classes

Class is an explicit member table with declared bases.  Lookups walk
its method resolution order (C3, like Python).  InjectStatics wraps a
class in a ProxyClass whose class-level lookups can fall back to the
configuration:

	proxy := in.InjectStatics("TEST")(test)
	v, err := proxy.Get("DEFAULT_TMP")

A native member anywhere in the chain is preferred over the
configured value; configuration only supplies attributes the classes
do not define.  Instances made by ProxyClass.New delegate everything to
the one inner Instance they own and never look at configuration.

Settings

The INJECTOR section configures the injector itself:

	[INJECTOR]
	debug = yes
	level = debug

With debug on, injected values and attribute lookups are logged at
level (default info).  Levels may be names or the numbers 10 through
50.

Injectors are not safe for concurrent use while SetStore is running.
*/
package ninject
