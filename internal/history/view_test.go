package history

import "testing"

func viewEntries(n int) []*Entry {
	out := make([]*Entry, n)
	for i := range out {
		out[i] = &Entry{ID: string(rune('a' + i))}
	}
	return out
}

func TestView_ResetClampsToLength(t *testing.T) {
	v := NewView(30, 20, 0.95)

	v.Reset(viewEntries(5))
	if got := v.Revealed(); got != 5 {
		t.Errorf("Revealed() = %d, want 5 (shorter than initial batch)", got)
	}

	v.Reset(viewEntries(100))
	if got := v.Revealed(); got != 30 {
		t.Errorf("Revealed() = %d, want 30", got)
	}
	if got := len(v.Visible()); got != 30 {
		t.Errorf("len(Visible()) = %d, want 30", got)
	}
}

func TestView_LoadMoreRevealsEverythingThenStops(t *testing.T) {
	v := NewView(30, 20, 0.95)
	v.Reset(viewEntries(75))

	wantSteps := []int{50, 70, 75}
	for _, want := range wantSteps {
		if !v.LoadMore() {
			t.Fatalf("LoadMore() = false before full reveal (revealed %d)", v.Revealed())
		}
		if got := v.Revealed(); got != want {
			t.Errorf("Revealed() = %d, want %d", got, want)
		}
	}

	if !v.Exhausted() {
		t.Error("Exhausted() = false after full reveal")
	}
	if v.LoadMore() {
		t.Error("LoadMore() = true when exhausted, want false")
	}
	if got := v.Revealed(); got != 75 {
		t.Errorf("Revealed() = %d, want 75 (never exceeds length)", got)
	}
}

func TestView_ResetShrinksWindow(t *testing.T) {
	v := NewView(10, 10, 0.95)
	v.Reset(viewEntries(50))
	v.LoadMore()
	v.LoadMore()
	if got := v.Revealed(); got != 30 {
		t.Fatalf("Revealed() = %d, want 30", got)
	}

	// A filter change resets to the initial batch.
	v.Reset(viewEntries(50))
	if got := v.Revealed(); got != 10 {
		t.Errorf("Revealed() after reset = %d, want 10", got)
	}
}

func TestView_ShouldLoadMore(t *testing.T) {
	v := NewView(10, 10, 0.95)
	v.Reset(viewEntries(50))

	if v.ShouldLoadMore(50, 100) {
		t.Error("ShouldLoadMore(50, 100) = true, want false (below threshold)")
	}
	if !v.ShouldLoadMore(96, 100) {
		t.Error("ShouldLoadMore(96, 100) = false, want true")
	}
	if v.ShouldLoadMore(96, 0) {
		t.Error("ShouldLoadMore with zero extent = true, want false")
	}

	for v.LoadMore() {
	}
	if v.ShouldLoadMore(100, 100) {
		t.Error("ShouldLoadMore = true when exhausted, want false")
	}
}

func TestView_DefaultsApplied(t *testing.T) {
	v := NewView(0, 0, 0)
	v.Reset(viewEntries(100))
	if got := v.Revealed(); got != DefaultInitialLoadCount {
		t.Errorf("Revealed() = %d, want default %d", got, DefaultInitialLoadCount)
	}
	v.LoadMore()
	if got := v.Revealed(); got != DefaultInitialLoadCount+DefaultLoadBatchSize {
		t.Errorf("Revealed() = %d, want %d", got, DefaultInitialLoadCount+DefaultLoadBatchSize)
	}
}
