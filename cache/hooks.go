package cache

import "fmt"

// Hooks are optional callbacks on memoization events. The key passed to a
// hook is the call key: the argument itself for Factory, the derived string
// for KeyedFactory.
type Hooks struct {
	OnHit    func(key any)   // stored result returned
	OnMiss   func(key any)   // about to execute the wrapped function
	OnStore  func(key any)   // result stored after a successful execution
	LogError func(err error) // key derivation failures and hook panics
}

// run calls fn, routing a panic to LogError instead of the caller.
func (h Hooks) run(fn func(any), key any) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.logError(fmt.Errorf("cache: hook panicked: %v", r))
		}
	}()
	fn(key)
}

// logError calls LogError if set, swallowing any panic it raises.
func (h Hooks) logError(err error) {
	if h.LogError == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	h.LogError(err)
}
