// Package demo runs the memoization demonstration printed by the decorate
// command.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/jonwraymond/decorate/cache"
	"github.com/jonwraymond/decorate/wrap"
)

// Greeting is the notice written when the squaring payload misses.
const Greeting = "Welcome, newcomer!"

// Input is the literal argument used for both demonstration calls.
const Input = 4

// Square returns the squaring payload. Each execution writes
// "calling <x>" to w, so a cache hit is visible by its absence.
func Square(w io.Writer) wrap.Func[int, int] {
	return func(_ context.Context, x int) (int, error) {
		if _, err := fmt.Fprintf(w, "calling %d\n", x); err != nil {
			return 0, err
		}
		return x * x, nil
	}
}

// Run memoizes Square, calls it twice with Input and writes both results
// space-separated. Notices and payload output also go to w; opts are applied
// after the writer option.
func Run(ctx context.Context, w io.Writer, opts ...cache.Option) error {
	opts = append([]cache.Option{cache.WithWriter(w)}, opts...)
	square := cache.Factory[int, int](cache.Message(Greeting), opts...)(Square(w))

	first, err := square(ctx, Input)
	if err != nil {
		return err
	}
	second, err := square(ctx, Input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, first, second)
	return err
}
