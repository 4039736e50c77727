// Package types defines the TabulatedFunction, Function, Iterator and Factory
// interfaces, the Point value type, and the standard error types for the
// tabula storage engine.
//
// Two backends implement TabulatedFunction: a contiguous array and a
// circular doubly-linked list with a cached cursor. Callers should depend on
// the interfaces in this package and obtain concrete tables through a
// Factory. Store describes the persistent named-table store.
package types
