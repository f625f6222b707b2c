package utils

import (
	"errors"
	"sync"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, int]()

	// Test Set and Get
	cache.Set("key1", 42)
	value, exists := cache.Get("key1")
	if !exists {
		t.Error("expected key1 to exist")
	}
	if value != 42 {
		t.Errorf("expected value 42, got %d", value)
	}

	// Test non-existent key
	_, exists = cache.Get("nonexistent")
	if exists {
		t.Error("expected nonexistent key to not exist")
	}

	// Test Delete
	cache.Delete("key1")
	_, exists = cache.Get("key1")
	if exists {
		t.Error("expected key1 to be deleted")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache[string, string]()

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	if cache.Size() != 2 {
		t.Errorf("expected size 2, got %d", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", cache.Size())
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	cache := NewCache[string, int]()
	calls := 0
	compute := func() (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := cache.GetOrCompute("seven", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 7 {
			t.Errorf("expected 7, got %d", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single computation, got %d", calls)
	}
}

func TestCache_GetOrComputeCachesErrors(t *testing.T) {
	cache := NewCache[string, int]()
	boom := errors.New("boom")
	calls := 0

	for i := 0; i < 2; i++ {
		_, err := cache.GetOrCompute("bad", func() (int, error) {
			calls++
			return 0, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single computation, got %d", calls)
	}

	if _, ok := cache.Get("bad"); ok {
		t.Error("failed computations must not be returned by Get")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = cache.GetOrCompute(n%5, func() (int, error) { return n % 5, nil })
		}(i)
	}
	wg.Wait()

	if cache.Size() != 5 {
		t.Errorf("expected 5 entries, got %d", cache.Size())
	}
	for i := 0; i < 5; i++ {
		if v, ok := cache.Get(i); !ok || v != i {
			t.Errorf("expected %d for key %d, got %d (present=%v)", i, i, v, ok)
		}
	}
}
