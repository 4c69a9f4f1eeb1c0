package collections

import (
	"errors"
	"testing"
)

func TestBeefMapNoOpStaysInterned(t *testing.T) {
	source := []int{1, 2, 3}
	b := NewBeef(source)
	b.Map(func(x int) int { return x })

	if !b.interned {
		t.Fatalf("no-op Map should not transition to owned")
	}
	got := b.AsSlice()
	if &got[0] != &source[0] {
		t.Fatalf("no-op Map must keep pointer identity with the original slice")
	}
}

func TestBeefMapTransitionsOnFirstChange(t *testing.T) {
	b := NewBeef([]int{1, 2, 3})
	b.Map(func(x int) int { return x * 2 })

	if b.interned {
		t.Fatalf("Map with a real change should transition to owned")
	}
	want := []int{2, 4, 6}
	got := b.AsSlice()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsSlice() = %v, want %v", got, want)
		}
	}
}

func TestBeefMapOnlyChangedSuffixRemapped(t *testing.T) {
	b := NewBeef([]int{1, 2, 3, 4, 5})
	b.Map(func(x int) int {
		if x == 3 {
			return 30
		}
		return x
	})
	want := []int{1, 2, 30, 4, 5}
	got := b.AsSlice()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsSlice() = %v, want %v", got, want)
		}
	}
}

func TestBeefTryMapShortCircuitsKeepingPartialProgress(t *testing.T) {
	b := NewBeef([]int{1, 2, 3, 4})
	err := b.TryMap(func(x int) (int, error) {
		if x > 3 {
			return 0, errors.New("value too large")
		}
		return x * 2, nil
	})
	if err == nil {
		t.Fatalf("expected an error once x > 3 is reached")
	}
	want := []int{2, 4, 6, 4}
	got := b.AsSlice()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsSlice() = %v, want %v (partial progress before error)", got, want)
		}
	}
}

func TestBeefTryScanSeesTransformedPrefix(t *testing.T) {
	b := NewBeef([]int{10, 20, 30, 40})
	err := b.TryScan(func(prefix []int, current int) (int, error) {
		return current * len(prefix), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 20, 60, 120}
	got := b.AsSlice()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsSlice() = %v, want %v", got, want)
		}
	}
}

func TestBeefFinishReturnsOriginalWhenUnmodified(t *testing.T) {
	source := []int{7, 8, 9}
	b := NewBeef(source)
	b.Map(func(x int) int { return x })

	called := false
	out := Finish(b, func(owned []int) []int {
		called = true
		return owned
	})
	if called {
		t.Fatalf("Finish should not call intern when no mutation occurred")
	}
	if &out[0] != &source[0] {
		t.Fatalf("Finish should return the original slice unchanged")
	}
}

func TestBeefFinishRebuildsWhenModified(t *testing.T) {
	b := NewBeef([]int{1, 2, 3})
	b.Map(func(x int) int { return x + 1 })

	out := Finish(b, func(owned []int) []int { return owned })
	want := []int{2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Finish() = %v, want %v", out, want)
		}
	}
}

func TestBeefEmptyAndSingleElement(t *testing.T) {
	empty := NewBeef([]int{})
	if !empty.IsEmpty() {
		t.Fatalf("expected empty Beef to report IsEmpty")
	}

	single := NewBeef([]int{43})
	if single.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", single.Len())
	}
	single.Map(func(x int) int { return x })
	got := single.AsSlice()
	if len(got) != 1 || got[0] != 43 {
		t.Fatalf("AsSlice() = %v, want [43]", got)
	}
}
