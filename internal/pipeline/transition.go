package pipeline

// LeftTransition builds n frames easing from the neutral pose at rest into
// the first frame of clip, arriving with the clip's initial velocity.
func LeftTransition(clip Clip, n int) Clip {
	if n < 1 || len(clip) == 0 {
		return nil
	}
	entry := EntryBoundary(clip)
	curves := make([][]Vec3, len(entry.Pose))
	for m := range curves {
		curves[m] = Hermite(Vec3{}, entry.Pose[m], n, Vec3{}, entry.Velocity[m])
	}
	return assemble(curves, n)
}

// RightTransition builds n frames leaving the last frame of clip with its
// final velocity. The curve lands on next when next carries a pose, chaining
// into the following clip; otherwise it returns to the neutral pose at rest.
func RightTransition(clip Clip, n int, next Boundary) Clip {
	if n < 1 || len(clip) == 0 {
		return nil
	}
	exit := exitBoundary(clip)
	curves := make([][]Vec3, len(exit.Pose))
	for m := range curves {
		var p2, t2 Vec3
		if !next.IsNeutral() {
			p2 = next.Pose[m]
			t2 = next.Velocity[m]
		}
		curves[m] = Hermite(exit.Pose[m], p2, n, exit.Velocity[m], t2)
	}
	return assemble(curves, n)
}

// assemble turns per-marker curves into frames.
func assemble(curves [][]Vec3, n int) Clip {
	out := make(Clip, n)
	for f := range out {
		frame := make(Frame, len(curves))
		for m, c := range curves {
			frame[m] = c[f]
		}
		out[f] = frame
	}
	return out
}
