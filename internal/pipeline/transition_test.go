package pipeline

import "testing"

// constClip returns n frames of markers markers all sitting at (v, v, v).
func constClip(n, markers int, v float64) Clip {
	c := make(Clip, n)
	for i := range c {
		f := make(Frame, markers)
		for m := range f {
			f[m] = Vec3{v, v, v}
		}
		c[i] = f
	}
	return c
}

func strictlyBetween(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return x > a && x < b
}

func TestLeftTransition_Empty(t *testing.T) {
	if got := LeftTransition(constClip(5, 2, 1), 0); len(got) != 0 {
		t.Errorf("expected empty transition, got %d frames", len(got))
	}
}

func TestLeftTransition_EasesIntoClip(t *testing.T) {
	clip := Clip{
		{{2, 4, 6}, {-1, -1, -1}},
		{{2, 4, 6}, {-1, -1, -1}},
		{{3, 5, 7}, {0, 0, 0}},
	}
	trans := LeftTransition(clip, 6)
	if len(trans) != 6 {
		t.Fatalf("len = %d, want 6", len(trans))
	}
	for i, f := range trans {
		if len(f) != 2 {
			t.Fatalf("frame %d has %d markers, want 2", i, len(f))
		}
		for m := range f {
			for k := 0; k < 3; k++ {
				if !strictlyBetween(f[m][k], 0, clip[0][m][k]) {
					t.Errorf("frame %d marker %d axis %d = %f, not between neutral and %f",
						i, m, k, f[m][k], clip[0][m][k])
				}
			}
		}
	}
	// The ease-in approaches the clip's first frame.
	first, last := trans[0][0][0], trans[5][0][0]
	if !(first < last) {
		t.Errorf("expected rising curve, got first=%f last=%f", first, last)
	}
}

func TestRightTransition_ReturnsToNeutral(t *testing.T) {
	clip := constClip(4, 3, 1)
	trans := RightTransition(clip, 5, Boundary{})
	if len(trans) != 5 {
		t.Fatalf("len = %d, want 5", len(trans))
	}
	for i, f := range trans {
		for m := range f {
			if !strictlyBetween(f[m][1], 0, 1) {
				t.Errorf("frame %d marker %d y = %f, want in (0,1)", i, m, f[m][1])
			}
		}
	}
}

func TestRightTransition_ChainsIntoNextClip(t *testing.T) {
	clip := constClip(4, 2, 1)
	next := EntryBoundary(constClip(3, 2, 5))
	trans := RightTransition(clip, 4, next)
	for i, f := range trans {
		for m := range f {
			if !strictlyBetween(f[m][0], 1, 5) {
				t.Errorf("frame %d marker %d x = %f, want in (1,5)", i, m, f[m][0])
			}
		}
	}
}

func TestRightTransition_SingleFrameClip(t *testing.T) {
	trans := RightTransition(constClip(1, 1, 2), 3, Boundary{})
	if len(trans) != 3 {
		t.Fatalf("len = %d, want 3", len(trans))
	}
	for i, f := range trans {
		if !strictlyBetween(f[0][2], 0, 2) {
			t.Errorf("frame %d z = %f, want in (0,2)", i, f[0][2])
		}
	}
}

func TestEntryBoundary(t *testing.T) {
	clip := Clip{
		{{1, 1, 1}},
		{{2, 3, 4}},
	}
	b := EntryBoundary(clip)
	if b.IsNeutral() {
		t.Fatal("expected non-neutral boundary")
	}
	if b.Velocity[0] != (Vec3{1, 2, 3}) {
		t.Errorf("velocity = %v, want [1 2 3]", b.Velocity[0])
	}
	if !EntryBoundary(nil).IsNeutral() {
		t.Error("empty clip should give a neutral boundary")
	}
}
