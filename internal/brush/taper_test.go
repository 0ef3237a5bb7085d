package brush

import "testing"

func TestTaperFactorEndpoints(t *testing.T) {
	for _, total := range []int{3, 5, 10, 50, 200} {
		if got := TaperFactor(0, total); got != 0 {
			t.Errorf("TaperFactor(0, %d) = %v, want 0", total, got)
		}
		if got := TaperFactor(total-1, total); got != 0 {
			t.Errorf("TaperFactor(%d, %d) = %v, want 0", total-1, total, got)
		}
	}
}

func TestTaperFactorShortStrokes(t *testing.T) {
	// 1-2 point strokes have a zero-length taper window and no taper.
	for _, total := range []int{1, 2} {
		for index := 0; index < total; index++ {
			if got := TaperFactor(index, total); got != 1 {
				t.Errorf("TaperFactor(%d, %d) = %v, want 1", index, total, got)
			}
		}
	}
}

func TestTaperFactorMiddleIsFullWidth(t *testing.T) {
	// Long strokes taper over at most 5 points at either end.
	const total = 100
	for index := 5; index <= total-1-5; index++ {
		if got := TaperFactor(index, total); got != 1 {
			t.Errorf("TaperFactor(%d, %d) = %v, want 1", index, total, got)
		}
	}
}

func TestTaperFactorMonotonic(t *testing.T) {
	const total = 30 // taper window of 5 at each end

	prev := TaperFactor(0, total)
	for index := 1; index < 5; index++ {
		cur := TaperFactor(index, total)
		if cur < prev {
			t.Errorf("leading taper not non-decreasing at index %d: %v < %v", index, cur, prev)
		}
		prev = cur
	}

	prev = TaperFactor(total-5, total)
	for index := total - 4; index < total; index++ {
		cur := TaperFactor(index, total)
		if cur > prev {
			t.Errorf("trailing taper not non-increasing at index %d: %v > %v", index, cur, prev)
		}
		prev = cur
	}
}

func TestTaperFactorRange(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for index := 0; index < total; index++ {
			got := TaperFactor(index, total)
			if got < 0 || got > 1 {
				t.Errorf("TaperFactor(%d, %d) = %v, want within [0, 1]", index, total, got)
			}
		}
	}
}
