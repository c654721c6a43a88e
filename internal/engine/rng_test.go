package engine

import "testing"

func TestStreamDeterminism(t *testing.T) {
	a := NewStream("seed-x")
	b := NewStream("seed-x")
	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
	}
}

func TestStreamRange(t *testing.T) {
	s := NewStream("range-check")
	for i := 0; i < 10000; i++ {
		v := s.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestStreamSeedsDiffer(t *testing.T) {
	a := NewStream("seed-a")
	b := NewStream("seed-b")
	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same == 100 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestGaussianDeterminism(t *testing.T) {
	a := NewStream("gauss")
	b := NewStream("gauss")
	for i := 0; i < 100; i++ {
		if a.Gaussian() != b.Gaussian() {
			t.Fatalf("gaussian draw %d diverged", i)
		}
	}
}

func TestGaussianRoughlyCentered(t *testing.T) {
	s := NewStream("gauss-center")
	var sum float64
	n := 10000
	for i := 0; i < n; i++ {
		sum += s.Gaussian()
	}
	mean := sum / float64(n)
	if mean < -0.1 || mean > 0.1 {
		t.Fatalf("gaussian mean too far from zero: %v", mean)
	}
}
