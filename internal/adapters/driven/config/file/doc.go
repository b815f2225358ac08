// Package file provides the TOML configuration store.
//
// Keys are addressed in dot notation ("search.limit") and written as
// nested tables:
//
//	[search]
//	limit = 5
package file
