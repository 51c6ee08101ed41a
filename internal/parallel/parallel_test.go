package parallel

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestSettle_PreservesOrder(t *testing.T) {
	// Later indices finish first.
	results := Settle(context.Background(), 5, func(ctx context.Context, i int) (string, error) {
		time.Sleep(time.Duration(5-i) * 5 * time.Millisecond)
		return strconv.Itoa(i), nil
	})

	if len(results) != 5 {
		t.Fatalf("Settle() returned %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.Value != strconv.Itoa(i) {
			t.Errorf("results[%d] = %q, want %q", i, r.Value, strconv.Itoa(i))
		}
	}
}

func TestSettle_FailuresDoNotCancelSiblings(t *testing.T) {
	var completed atomic.Int32
	results := Settle(context.Background(), 4, func(ctx context.Context, i int) (int, error) {
		if i == 0 {
			return 0, errors.New("fails fast")
		}
		time.Sleep(20 * time.Millisecond)
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		completed.Add(1)
		return i, nil
	})

	if completed.Load() != 3 {
		t.Errorf("completed = %d, want 3", completed.Load())
	}
	if results[0].OK() {
		t.Error("results[0] should carry the error")
	}
	for i := 1; i < 4; i++ {
		if !results[i].OK() || results[i].Value != i {
			t.Errorf("results[%d] = %+v", i, results[i])
		}
	}
}

func TestSettle_WaitsForAll(t *testing.T) {
	start := time.Now()
	Settle(context.Background(), 3, func(ctx context.Context, i int) (struct{}, error) {
		if i == 2 {
			time.Sleep(50 * time.Millisecond)
		}
		return struct{}{}, nil
	})
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Settle() returned after %v, before the slowest task", elapsed)
	}
}

func TestSettle_Zero(t *testing.T) {
	results := Settle(context.Background(), 0, func(ctx context.Context, i int) (int, error) {
		t.Error("fn should not be called")
		return 0, nil
	})
	if len(results) != 0 {
		t.Errorf("Settle(0) = %v", results)
	}
}

func TestFirst(t *testing.T) {
	results := []Result[int]{
		{Err: errors.New("timeout")},
		{Value: 3},
		{Value: 4},
		{Value: 6},
	}

	got, ok := First(results, func(v int) (string, bool) {
		return strconv.Itoa(v), v%2 == 0
	})
	if !ok || got != "4" {
		t.Errorf("First() = %q, %v, want \"4\", true", got, ok)
	}

	_, ok = First(results, func(v int) (string, bool) { return "", false })
	if ok {
		t.Error("First() should report no match")
	}
}
