package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// indexClip returns a one-marker clip whose frame i sits at x = i.
func indexClip(n int) Clip {
	c := make(Clip, n)
	for i := range c {
		c[i] = Frame{{float64(i), 0, 0}}
	}
	return c
}

func indices(c Clip) []int {
	out := make([]int, len(c))
	for i, f := range c {
		out[i] = int(f[0][0])
	}
	return out
}

func TestResample_ExactLength(t *testing.T) {
	for size := 1; size <= 30; size++ {
		clip := indexClip(size)
		for n := 1; n <= 10*size; n++ {
			got, err := Resample(clip, n)
			if err != nil {
				t.Fatalf("Resample(%d -> %d): %v", size, n, err)
			}
			if len(got) != n {
				t.Fatalf("Resample(%d -> %d) has %d frames", size, n, len(got))
			}
		}
	}
}

func TestResample_Identity(t *testing.T) {
	clip := indexClip(12)
	got, err := Resample(clip, 12)
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &clip[0] {
		t.Error("expected the same clip back when the length already matches")
	}
}

func TestResample_StretchOnlyDuplicates(t *testing.T) {
	for size := 1; size <= 25; size++ {
		for n := size + 1; n <= 10*size; n++ {
			got, _ := Resample(indexClip(size), n)
			idx := indices(got)
			if idx[0] != 0 || idx[len(idx)-1] != size-1 {
				t.Fatalf("%d -> %d: endpoints %d..%d", size, n, idx[0], idx[len(idx)-1])
			}
			for i := 1; i < len(idx); i++ {
				// Either the same frame again or the next one.
				if d := idx[i] - idx[i-1]; d != 0 && d != 1 {
					t.Fatalf("%d -> %d: jump %d -> %d at %d", size, n, idx[i-1], idx[i], i)
				}
			}
		}
	}
}

func TestResample_CompressOnlyDeletes(t *testing.T) {
	for size := 2; size <= 40; size++ {
		for n := 1; n < size; n++ {
			got, _ := Resample(indexClip(size), n)
			idx := indices(got)
			for i := 1; i < len(idx); i++ {
				if idx[i] <= idx[i-1] {
					t.Fatalf("%d -> %d: order broken at %d: %v", size, n, i, idx)
				}
			}
		}
	}
}

func TestResample_StretchDistribution(t *testing.T) {
	got, err := Resample(indexClip(28), 30)
	if err != nil {
		t.Fatal(err)
	}
	var want []int
	for i := 0; i < 28; i++ {
		want = append(want, i)
		if i == 13 || i == 27 {
			want = append(want, i)
		}
	}
	if diff := cmp.Diff(want, indices(got)); diff != "" {
		t.Errorf("stretch 28 -> 30 mismatch (-want +got):\n%s", diff)
	}
}

func TestResample_CompressDistribution(t *testing.T) {
	got, err := Resample(indexClip(10), 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 3, 4, 5, 6, 8, 9}
	if diff := cmp.Diff(want, indices(got)); diff != "" {
		t.Errorf("compress 10 -> 8 mismatch (-want +got):\n%s", diff)
	}
}

func TestResample_LargeStretchRepeatsWholeFrames(t *testing.T) {
	got, _ := Resample(indexClip(3), 9)
	want := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	if diff := cmp.Diff(want, indices(got)); diff != "" {
		t.Errorf("stretch 3 -> 9 mismatch (-want +got):\n%s", diff)
	}
}

func TestResample_RoundTrip(t *testing.T) {
	clip := indexClip(17)
	for _, n := range []int{1, 5, 16, 18, 40, 170} {
		mid, err := Resample(clip, n)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Resample(mid, len(clip))
		if err != nil {
			t.Fatal(err)
		}
		if len(back) != len(clip) {
			t.Errorf("round trip via %d: %d frames, want %d", n, len(back), len(clip))
		}
	}
}

func TestResample_Errors(t *testing.T) {
	if _, err := Resample(indexClip(4), 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("n=0: err = %v, want ErrInvalidDuration", err)
	}
	if _, err := Resample(indexClip(4), -3); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("n=-3: err = %v, want ErrInvalidDuration", err)
	}
	if _, err := Resample(nil, 3); !errors.Is(err, ErrEmptyClip) {
		t.Errorf("empty clip: err = %v, want ErrEmptyClip", err)
	}
}
