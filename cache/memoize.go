package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/decorate/wrap"
)

// AttrCacheOutcome is set on the span in the call's context, if any, to
// "hit", "miss" or "bypass" (key derivation failed).
const AttrCacheOutcome = attribute.Key("func.cache.outcome")

// Option configures a memoizing decorator.
type Option func(*options)

type options struct {
	writer io.Writer
	hooks  Hooks
}

func newOptions(opts []Option) options {
	o := options{writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWriter sets where the Notice is written on a miss. Default: os.Stdout.
// A nil writer discards the Notice.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}
		o.writer = w
	}
}

// WithHooks installs event callbacks.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// Factory returns a memoizing decorator configured with notice.
//
// Every function wrapped by the returned decorator owns a private Store
// created at wrap time. Wrapping does not call the function.
//
// A may contain interface types (Factory[any, R] compiles). Such arguments
// are checked per call; a dynamic value that is not hashable runs uncached
// and ErrUnhashableKey goes to Hooks.LogError.
func Factory[A comparable, R any](notice Notice, opts ...Option) wrap.Decorator[A, R] {
	o := newOptions(opts)
	keyOf := identityKey[A]
	if holdsInterface(reflect.TypeFor[A]()) {
		keyOf = checkedKey[A]
	}
	return func(fn wrap.Func[A, R]) wrap.Func[A, R] {
		m := &memoized[A, A, R]{
			fn:      fn,
			keyOf:   keyOf,
			store:   NewMemoryStore[A, R](),
			notice:  notice,
			options: o,
		}
		return m.call
	}
}

// KeyedFactory is Factory for argument types that are not comparable. Each
// call key is derived with key and checked with ValidateKey; if either
// fails, the call runs uncached and the failure goes to Hooks.LogError.
func KeyedFactory[A, R any](notice Notice, key KeyFunc[A], opts ...Option) wrap.Decorator[A, R] {
	o := newOptions(opts)
	keyOf := stringKey(key)
	return func(fn wrap.Func[A, R]) wrap.Func[A, R] {
		m := &memoized[string, A, R]{
			fn:      fn,
			keyOf:   keyOf,
			store:   NewMemoryStore[string, R](),
			notice:  notice,
			options: o,
		}
		return m.call
	}
}

// memoized is one wrapped function and its private store.
//
// Not safe for concurrent use as a whole: two concurrent misses on the same
// key may both execute fn. The store itself stays consistent.
type memoized[K comparable, A, R any] struct {
	fn     wrap.Func[A, R]
	keyOf  func(A) (K, error)
	store  Store[K, R]
	notice Notice
	options
}

// call returns the stored result on a hit. On a miss it writes the notice,
// executes fn and stores the result. Errors are NOT stored.
func (m *memoized[K, A, R]) call(ctx context.Context, arg A) (R, error) {
	span := trace.SpanFromContext(ctx)

	key, err := m.keyOf(arg)
	if err != nil {
		// Key derivation failed - execute without caching
		span.SetAttributes(AttrCacheOutcome.String("bypass"))
		m.hooks.logError(fmt.Errorf("cache: key derivation failed: %w", err))
		return m.fn(ctx, arg)
	}

	if cached, ok := m.store.Get(key); ok {
		span.SetAttributes(AttrCacheOutcome.String("hit"))
		m.hooks.run(m.hooks.OnHit, key)
		return cached, nil
	}

	// Cache miss - notify, then execute
	span.SetAttributes(AttrCacheOutcome.String("miss"))
	m.hooks.run(m.hooks.OnMiss, key)
	if _, err := m.notice.WriteTo(m.writer); err != nil {
		m.hooks.logError(fmt.Errorf("cache: failed to write notice: %w", err))
	}

	result, err := m.fn(ctx, arg)
	if err != nil {
		return result, err
	}

	m.store.Set(key, result)
	m.hooks.run(m.hooks.OnStore, key)
	return result, nil
}
