/*
Package store holds configuration as named sections of string-valued
options, the shape an INI file has.

A Store answers three questions: does a section exist, which options does
it hold (in definition order), and what is the raw value of one option.
An option can exist without a value; Get reports that with a nil pointer
rather than an error.

Stores are built by the loaders in this package:

	LoadINI    INI files, with ConfigParser style DEFAULT inheritance
	LoadTOML   TOML files, top-level tables are sections
	LoadFile   YAML or JSON files, via github.com/muir/nflex

and can be stacked:

	s := store.Env("MYAPP_", store.Layered(local, shared))

Option names are case-insensitive; section names are not.

Stores are not synchronized.  Load once, then read from as many places
as needed.
*/
package store
