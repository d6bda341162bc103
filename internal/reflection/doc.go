// Package reflection analyzes constructor functions, names Go types as
// resolver identifiers and invokes constructors with resolved arguments.
package reflection
