// Package cache provides memoizing wrappers for functions.
//
// Factory takes a Notice and returns a decorator; each function wrapped by
// that decorator gets its own unbounded in-memory Store keyed on the call
// argument. A repeat call with an equal argument returns the stored result
// without running the function. A first call writes the Notice, runs the
// function and stores the result. Errors are never stored.
//
// Argument types that are not comparable go through KeyedFactory with a
// KeyFunc such as JSONKey.
//
// Stores have no eviction, expiry or size bound: entries live as long as the
// wrapped function does.
package cache
