package thumbcache

import "testing"

func TestCache_BoundedByMaxSize(t *testing.T) {
	c := New[string](3)
	for _, ref := range []string{"a", "b", "c", "d", "e"} {
		c.Put(ref, "thumb-"+ref)
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string](2)

	c.Put("a", "thumb-a")
	c.Put("b", "thumb-b")
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missed immediately after Put")
	}
	// a is now most-recently-used, so inserting c evicts b.
	c.Put("c", "thumb-c")

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want it evicted as LRU")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted, want it retained")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c was evicted, want it retained")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int](4)
	c.Put("a", 1)
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) hit after Invalidate")
	}
	// Invalidating an absent ref is a no-op.
	c.Invalidate("missing")
}

func TestCache_NonPositiveSizeUsesDefault(t *testing.T) {
	c := New[int](0)
	for i := 0; i < DefaultMaxSize+10; i++ {
		c.Put(string(rune(i)), i)
	}
	if got := c.Len(); got != DefaultMaxSize {
		t.Errorf("Len() = %d, want %d", got, DefaultMaxSize)
	}
}
