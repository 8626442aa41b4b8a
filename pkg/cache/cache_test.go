package cache_test

import (
	"fmt"
	"testing"

	"github.com/go-drift/snapshot/pkg/cache"
	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/icon"
)

// iconOfSize builds an icon whose encoded length is exactly n bytes.
func iconOfSize(n int) *icon.Icon {
	return icon.New(make([]byte, n), graphics.Size{Width: 10, Height: 10}, 1.0)
}

func TestCache_RequiresPositiveMaxEntries(t *testing.T) {
	if _, err := cache.New[string](0, 0); err == nil {
		t.Fatal("expected error for maxEntries = 0")
	}
	if _, err := cache.New[string](-3, 0); err == nil {
		t.Fatal("expected error for negative maxEntries")
	}
}

func TestCache_EntryCountBound(t *testing.T) {
	c, err := cache.New[int](3, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		c.Put(i, iconOfSize(10))
		if c.Len() > 3 {
			t.Fatalf("after put %d: len = %d, want <= 3", i, c.Len())
		}
	}
	if c.Len() != 3 {
		t.Fatalf("final len = %d, want 3", c.Len())
	}
}

func TestCache_ByteBound(t *testing.T) {
	c, err := cache.New[int](100, 250)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		c.Put(i, iconOfSize(100))
		if c.TotalBytes() > 250 {
			t.Fatalf("after put %d: total = %d, want <= 250", i, c.TotalBytes())
		}
	}
	// 250-byte budget holds two 100-byte entries.
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if c.TotalBytes() != 200 {
		t.Fatalf("total = %d, want 200", c.TotalBytes())
	}
}

func TestCache_LRUOrder(t *testing.T) {
	c, err := cache.New[string](2, 0)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", iconOfSize(1))
	c.Put("b", iconOfSize(1))
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be cached")
	}
	c.Put("c", iconOfSize(1))

	if c.Contains("b") {
		t.Error("b should have been evicted (least recently used)")
	}
	if !c.Contains("a") {
		t.Error("a should survive: it was accessed after b")
	}
	if !c.Contains("c") {
		t.Error("c should be cached")
	}
}

func TestCache_PeekDoesNotBump(t *testing.T) {
	c, err := cache.New[string](2, 0)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", iconOfSize(1))
	c.Put("b", iconOfSize(1))
	if _, ok := c.Peek("a"); !ok {
		t.Fatal("expected a present")
	}
	c.Put("c", iconOfSize(1))

	// Peek must not have protected a: it stays least recently used.
	if c.Contains("a") {
		t.Error("a should have been evicted despite the peek")
	}
	if !c.Contains("b") || !c.Contains("c") {
		t.Error("b and c should be cached")
	}
}

func TestCache_OversizedRejection(t *testing.T) {
	c, err := cache.New[string](10, 100)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("small", iconOfSize(40))
	lenBefore, bytesBefore := c.Len(), c.TotalBytes()

	if retained := c.Put("huge", iconOfSize(101)); retained {
		t.Error("oversized icon must not be retained")
	}
	if c.Len() != lenBefore || c.TotalBytes() != bytesBefore {
		t.Errorf("cache changed by oversized put: len %d->%d bytes %d->%d",
			lenBefore, c.Len(), bytesBefore, c.TotalBytes())
	}
	if c.Contains("huge") {
		t.Error("oversized icon must not appear in the cache")
	}
}

func TestCache_MemoryExactEviction(t *testing.T) {
	// Measure one icon's size, then budget exactly that much.
	ic := iconOfSize(64)
	size := int64(ic.SizeInBytes())

	c, err := cache.New[string](10, size)
	if err != nil {
		t.Fatal(err)
	}
	if retained := c.Put("first", ic); !retained {
		t.Fatal("first icon fits the budget exactly and must be retained")
	}
	if retained := c.Put("second", iconOfSize(64)); !retained {
		t.Fatal("second icon must be retained after evicting the first")
	}

	if c.Contains("first") {
		t.Error("first should have been evicted")
	}
	if !c.Contains("second") {
		t.Error("second should be cached")
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
	if c.TotalBytes() != size {
		t.Errorf("total = %d, want %d", c.TotalBytes(), size)
	}
}

func TestCache_ReplaceAccountsBytes(t *testing.T) {
	c, err := cache.New[string](10, 1000)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", iconOfSize(300))
	c.Put("k", iconOfSize(100))

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if c.TotalBytes() != 100 {
		t.Fatalf("total = %d, want 100 (old entry's bytes must be released)", c.TotalBytes())
	}
}

func TestCache_RemoveAndClear(t *testing.T) {
	c, err := cache.New[string](10, 0)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", iconOfSize(10))
	c.Put("b", iconOfSize(20))

	c.Remove("a")
	if c.Contains("a") {
		t.Error("a should be gone after Remove")
	}
	if c.TotalBytes() != 20 {
		t.Errorf("total = %d, want 20", c.TotalBytes())
	}
	c.Remove("missing") // no-op

	c.Clear()
	if c.Len() != 0 || c.TotalBytes() != 0 {
		t.Errorf("after Clear: len = %d total = %d, want 0/0", c.Len(), c.TotalBytes())
	}
}

func TestCache_TotalMatchesSum(t *testing.T) {
	c, err := cache.New[int](5, 500)
	if err != nil {
		t.Fatal(err)
	}
	sizes := []int{50, 120, 80, 200, 90, 10, 400, 60}
	for i, n := range sizes {
		c.Put(i, iconOfSize(n))

		var sum int64
		for j := 0; j <= i; j++ {
			if ic, ok := c.Peek(j); ok {
				sum += int64(ic.SizeInBytes())
			}
		}
		if c.TotalBytes() != sum {
			t.Fatalf("step %d: total = %d, want sum of entries %d", i, c.TotalBytes(), sum)
		}
	}
}

func TestCache_GetMissingCreatesNothing(t *testing.T) {
	c, err := cache.New[string](5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("nope"); ok {
		t.Fatal("expected miss")
	}
	if c.Len() != 0 {
		t.Fatalf("miss must not create entries, len = %d", c.Len())
	}
}

func ExampleCache() {
	c, _ := cache.New[string](2, 0)
	c.Put("pin-red", iconOfSize(120))
	c.Put("pin-blue", iconOfSize(140))

	ic, ok := c.Get("pin-red")
	fmt.Println(ok, ic.SizeInBytes())
	// Output: true 120
}
