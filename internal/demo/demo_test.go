package demo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/decorate/cache"
)

func TestRun_Output(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "Welcome, newcomer!\ncalling 4\n16 16\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_SecondCallIsHit(t *testing.T) {
	var hits, misses int
	hooks := cache.Hooks{
		OnHit:  func(any) { hits++ },
		OnMiss: func(any) { misses++ },
	}

	var out bytes.Buffer
	if err := Run(context.Background(), &out, cache.WithHooks(hooks)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if hits != 1 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1 and 1", hits, misses)
	}
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRun_WriteErrorPropagates(t *testing.T) {
	if err := Run(context.Background(), failingWriter{}); err == nil {
		t.Error("expected write error to propagate")
	}
}

func TestSquare(t *testing.T) {
	var out bytes.Buffer
	got, err := Square(&out).Call(5)
	if err != nil || got != 25 {
		t.Errorf("Square(5) = %d, %v; want 25, nil", got, err)
	}
	if out.String() != "calling 5\n" {
		t.Errorf("output = %q", out.String())
	}
}
