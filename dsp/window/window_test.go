package window

import (
	"math"
	"testing"
)

func assertSymmetric(t *testing.T, w []float64) {
	t.Helper()
	for i := range w {
		j := len(w) - 1 - i
		if math.Abs(w[i]-w[j]) > 1e-12 {
			t.Fatalf("window not symmetric at %d: %v vs %v", i, w[i], w[j])
		}
	}
}

func TestHann(t *testing.T) {
	w := Hann(64)
	if w[0] > 1e-12 || w[63] > 1e-12 {
		t.Fatalf("Hann endpoints should be zero, got %v and %v", w[0], w[63])
	}
	assertSymmetric(t, w)

	if len(Hann(1)) != 1 || Hann(1)[0] != 1 {
		t.Fatal("single-point window is unity")
	}
}

func TestHamming(t *testing.T) {
	w := Hamming(64)
	if math.Abs(w[0]-0.08) > 1e-9 {
		t.Fatalf("Hamming endpoint should be 0.08, got %v", w[0])
	}
	assertSymmetric(t, w)
}

func TestBlackman(t *testing.T) {
	w := Blackman(65)
	if math.Abs(w[32]-1.0) > 1e-9 {
		t.Fatalf("Blackman midpoint should be 1, got %v", w[32])
	}
	assertSymmetric(t, w)
}

func TestTukey(t *testing.T) {
	// alpha 0 degenerates to rectangular
	for _, v := range Tukey(16, 0) {
		if v != 1 {
			t.Fatal("Tukey(n, 0) should be all ones")
		}
	}

	// alpha 1 matches Hann
	tk := Tukey(64, 1)
	hn := Hann(64)
	for i := range tk {
		if math.Abs(tk[i]-hn[i]) > 1e-9 {
			t.Fatalf("Tukey(n, 1) differs from Hann at %d: %v vs %v", i, tk[i], hn[i])
		}
	}

	// Middle of a mild taper is flat
	tk = Tukey(100, 0.2)
	assertSymmetric(t, tk)
	for i := 30; i < 70; i++ {
		if tk[i] != 1 {
			t.Fatalf("Tukey flat section should be 1 at %d, got %v", i, tk[i])
		}
	}
}

func TestApply(t *testing.T) {
	samples := []float64{2, 2, 2, 2}
	Apply(samples, []float64{0, 0.5, 1, 0.5})
	want := []float64{0, 1, 2, 1}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("Apply mismatch at %d: %v", i, samples[i])
		}
	}
}
