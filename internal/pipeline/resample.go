package pipeline

import "fmt"

// Resample stretches or compresses clip to exactly n frames. Stretching only
// duplicates frames and compressing only drops them, so the source frame
// order is always preserved. When n equals the clip length the clip itself is
// returned.
func Resample(clip Clip, n int) (Clip, error) {
	if n < 1 {
		return nil, fmt.Errorf("resample to %d frames: %w", n, ErrInvalidDuration)
	}
	if len(clip) == 0 {
		return nil, ErrEmptyClip
	}

	switch {
	case n > len(clip):
		return stretch(clip, n), nil
	case n < len(clip):
		return compress(clip, n), nil
	}
	return clip, nil
}

// stretch repeats whole frames first when n is at least twice the clip
// length, then spreads the remaining insertions evenly: after every
// len/extra-th source frame that frame is emitted once more.
func stretch(clip Clip, n int) Clip {
	src := clip
	if reps := n / len(clip); reps > 1 {
		src = make(Clip, 0, reps*len(clip))
		for _, f := range clip {
			for r := 0; r < reps; r++ {
				src = append(src, f)
			}
		}
	}

	extra := n - len(src)
	if extra == 0 {
		return src
	}
	// extra < len(clip) <= len(src), so every >= 1 and there are at least
	// extra multiples of every in 1..len(src).
	every := len(src) / extra

	out := make(Clip, 0, n)
	for i, f := range src {
		out = append(out, f)
		if extra > 0 && (i+1)%every == 0 {
			out = append(out, f)
			extra--
		}
	}
	return out
}

// compress drops one frame from each of size-n intervals. Intervals are step
// frames long; the remainder size%drop is accumulated and lengthens an
// interval by one whenever it reaches a whole interval, so the dropped frames
// are spread uniformly across the clip. The middle frame of each interval
// is dropped rather than the frame at each step multiple, so the first frame
// survives and the entry boundary of the clip is unchanged.
func compress(clip Clip, n int) Clip {
	size := len(clip)
	drop := size - n
	step, rem := size/drop, size%drop

	out := make(Clip, 0, n)
	acc, start := 0, 0
	for k := 0; k < drop && start < size; k++ {
		length := step
		acc += rem
		if acc >= drop {
			acc -= drop
			length++
		}
		skip := start + length/2
		for i := start; i < start+length && i < size; i++ {
			if i != skip {
				out = append(out, clip[i])
			}
		}
		start += length
	}
	for i := start; i < size && len(out) < n; i++ {
		out = append(out, clip[i])
	}
	for len(out) < n {
		out = append(out, clip[size-1])
	}
	return out[:n]
}
