// Package wrap defines the function shape shared by every wrapper in this
// module and small helpers for adapting and composing wrappers.
//
// A Func takes one argument. Functions of several positional arguments take a
// comparable struct instead, which doubles as the call key for memoization.
//
// Wrappers are plain values: applying one never runs the wrapped function and
// has no side effects until the returned Func is called.
package wrap
