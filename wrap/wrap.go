package wrap

import "context"

// Func is the function signature that every wrapper accepts and returns.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// Decorator wraps a Func with additional behavior around each call.
//
// Contract:
//   - The returned Func must pass the argument through to the wrapped Func
//     unchanged and return its result unmodified.
//   - Errors from the wrapped Func propagate unchanged.
type Decorator[A, R any] func(fn Func[A, R]) Func[A, R]

// Call invokes f with a background context.
func (f Func[A, R]) Call(arg A) (R, error) {
	return f(context.Background(), arg)
}

// Lift adapts a pure function into a Func that never fails.
func Lift[A, R any](fn func(A) R) Func[A, R] {
	return func(_ context.Context, arg A) (R, error) {
		return fn(arg), nil
	}
}

// LiftErr adapts a fallible function into a Func.
func LiftErr[A, R any](fn func(A) (R, error)) Func[A, R] {
	return func(_ context.Context, arg A) (R, error) {
		return fn(arg)
	}
}

// Chain composes decorators into one. The first decorator is the outermost:
// Chain(a, b)(fn) behaves like a(b(fn)). Nil decorators are skipped.
func Chain[A, R any](decorators ...Decorator[A, R]) Decorator[A, R] {
	return func(fn Func[A, R]) Func[A, R] {
		for i := len(decorators) - 1; i >= 0; i-- {
			if decorators[i] == nil {
				continue
			}
			fn = decorators[i](fn)
		}
		return fn
	}
}
