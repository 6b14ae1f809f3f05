package pipeline

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestHermite_Length(t *testing.T) {
	for n := 1; n <= 12; n++ {
		got := Hermite(Vec3{}, Vec3{1, 2, 3}, n, Vec3{1, 0, 0}, Vec3{0, 1, 0})
		if len(got) != n {
			t.Errorf("len(Hermite(n=%d)) = %d, want %d", n, len(got), n)
		}
	}
}

func TestHermite_NoSamples(t *testing.T) {
	for _, n := range []int{0, -1, -10} {
		if got := Hermite(Vec3{}, Vec3{1, 1, 1}, n, Vec3{}, Vec3{}); got != nil {
			t.Errorf("Hermite(n=%d) = %v, want nil", n, got)
		}
	}
}

func TestHermite_ConstantCurve(t *testing.T) {
	p := Vec3{0.25, -3, 7.5}
	for _, s := range Hermite(p, p, 9, Vec3{}, Vec3{}) {
		for k := range s {
			if !near(s[k], p[k]) {
				t.Fatalf("sample %v, want %v", s, p)
			}
		}
	}
}

func TestHermite_ExcludesEndpoints(t *testing.T) {
	p1 := Vec3{0, 0, 0}
	p2 := Vec3{1, 1, 1}
	samples := Hermite(p1, p2, 20, Vec3{}, Vec3{})

	prev := 0.0
	for i, s := range samples {
		for k := range s {
			if s[k] <= p1[k] || s[k] >= p2[k] {
				t.Fatalf("sample %d = %v not strictly between endpoints", i, s)
			}
		}
		if s[0] <= prev {
			t.Errorf("sample %d = %f, not increasing (prev %f)", i, s[0], prev)
		}
		prev = s[0]
	}
}

func TestHermite_Midpoint(t *testing.T) {
	// At t = 1/2 the tangent weights cancel when both tangents are equal.
	got := Hermite(Vec3{2, 4, 6}, Vec3{4, 8, 10}, 1, Vec3{1, 1, 1}, Vec3{1, 1, 1})
	want := Vec3{3, 6, 8}
	for k := range want {
		if !near(got[0][k], want[k]) {
			t.Errorf("midpoint = %v, want %v", got[0], want)
		}
	}
}

func TestHermite_TangentScaling(t *testing.T) {
	// With n = 1, t = 1/2 and a start tangent only, the sample is offset by
	// n * T1 * (t³ - 2t² + t) = 0.125 * T1.
	got := Hermite(Vec3{}, Vec3{}, 1, Vec3{8, 0, 0}, Vec3{})
	if !near(got[0][0], 1) {
		t.Errorf("sample x = %f, want 1", got[0][0])
	}
}
