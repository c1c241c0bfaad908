package cache_test

import (
	"fmt"
	"os"

	"github.com/jonwraymond/decorate/cache"
	"github.com/jonwraymond/decorate/wrap"
)

func ExampleFactory() {
	memo := cache.Factory[int, int](cache.Message("Welcome, newcomer!"), cache.WithWriter(os.Stdout))

	square := memo(wrap.Lift(func(x int) int {
		fmt.Println("calling", x)
		return x * x
	}))

	a, _ := square.Call(4)
	b, _ := square.Call(4)
	fmt.Println(a, b)
	// Output:
	// Welcome, newcomer!
	// calling 4
	// 16 16
}

func ExampleKeyedFactory() {
	memo := cache.KeyedFactory[[]string, int](
		cache.Message("counting"),
		cache.JSONKey[[]string],
		cache.WithWriter(os.Stdout),
	)

	count := memo(wrap.Lift(func(words []string) int { return len(words) }))

	n, _ := count.Call([]string{"a", "b"})
	m, _ := count.Call([]string{"a", "b"})
	fmt.Println(n, m)
	// Output:
	// counting
	// 2 2
}

func ExampleJSONKey() {
	k1, _ := cache.JSONKey(map[string]any{"a": 1, "b": 2})
	k2, _ := cache.JSONKey(map[string]any{"b": 2, "a": 1})
	fmt.Println("Same key:", k1 == k2)
	// Output:
	// Same key: true
}

func ExampleHooks() {
	hooks := cache.Hooks{
		OnHit:  func(k any) { fmt.Println("hit", k) },
		OnMiss: func(k any) { fmt.Println("miss", k) },
	}

	double := cache.Factory[int, int](nil, cache.WithHooks(hooks))(
		wrap.Lift(func(x int) int { return 2 * x }),
	)

	_, _ = double.Call(1)
	_, _ = double.Call(1)
	// Output:
	// miss 1
	// hit 1
}
