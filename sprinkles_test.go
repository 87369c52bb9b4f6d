package sprinkles

import "testing"

func TestRangeDefault(t *testing.T) {
	r := DefaultRange()
	if r.Min != 0 || r.Max != 1 {
		t.Errorf("default range = %+v, want {0 1}", r)
	}
}

func TestRangeSpan(t *testing.T) {
	if got := NewRange(1, 4).Span(); got != 3 {
		t.Errorf("Span() = %v, want 3", got)
	}
}

func TestRangeSpanZeroReturnsOne(t *testing.T) {
	if got := NewRange(5, 5).Span(); got != 1 {
		t.Errorf("zero span = %v, want 1 (divide-by-zero guard)", got)
	}
}

func TestRangeSpanNegative(t *testing.T) {
	if got := NewRange(4, 1).Span(); got != -3 {
		t.Errorf("inverted range span = %v, want -3", got)
	}
}

func TestLerpColor(t *testing.T) {
	got := lerpColor(Color{0, 0, 0, 0}, Color{1, 1, 1, 1}, 0.5)
	want := Color{0.5, 0.5, 0.5, 0.5}
	if got != want {
		t.Errorf("lerpColor = %v, want %v", got, want)
	}
}

func TestSign32(t *testing.T) {
	if sign32(3) != 1 || sign32(-3) != -1 {
		t.Error("sign32 of nonzero values wrong")
	}
	// Positive zero counts as positive so flat segments keep tension direction.
	if sign32(0) != 1 {
		t.Error("sign32(0) should be 1")
	}
}
