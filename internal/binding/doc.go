// Package binding stores direct value bindings, interface redirections and
// declaring-class scoped parameter overrides.
//
// Every composite key is a two-field struct, so ("ab", "c") and ("a", "bc")
// never collide.
package binding
