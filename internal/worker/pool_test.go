package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestExecutePreservesOrder(t *testing.T) {
	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}

	pool := NewPool(8, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	results := pool.Execute(context.Background(), inputs)
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	for i, task := range results {
		if task.Err != nil {
			t.Fatalf("task %d failed: %v", i, task.Err)
		}
		if task.Input != i || task.Result != i*2 {
			t.Errorf("results[%d] = {%d, %d}, want {%d, %d}", i, task.Input, task.Result, i, i*2)
		}
	}
}

func TestExecuteCollectsErrors(t *testing.T) {
	pool := NewPool(2, func(ctx context.Context, n int) (string, error) {
		if n%2 == 1 {
			return "", fmt.Errorf("odd input %d", n)
		}
		return "ok", nil
	})

	results := pool.Execute(context.Background(), []int{0, 1, 2, 3})
	for i, task := range results {
		if i%2 == 1 && task.Err == nil {
			t.Errorf("results[%d].Err = nil, want error", i)
		}
		if i%2 == 0 && task.Err != nil {
			t.Errorf("results[%d].Err = %v", i, task.Err)
		}
	}
}

func TestExecuteCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed atomic.Int32
	pool := NewPool(2, func(ctx context.Context, n int) (int, error) {
		processed.Add(1)
		return n, errors.New("should not run")
	})

	inputs := make([]int, 100)
	results := pool.Execute(ctx, inputs)
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	if got := processed.Load(); got == int32(len(inputs)) {
		t.Errorf("all %d tasks ran despite cancelled context", got)
	}
}

func TestZeroWorkersClampedToOne(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	})
	results := pool.Execute(context.Background(), []int{41})
	if results[0].Result != 42 {
		t.Errorf("Result = %d, want 42", results[0].Result)
	}
}
