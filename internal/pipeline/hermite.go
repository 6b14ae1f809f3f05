package pipeline

// hermiteBasis is the standard cubic Hermite matrix, applied to the control
// vector [P1, P2, T1, T2] after multiplying by [t³ t² t 1].
var hermiteBasis = [4][4]float64{
	{2, -2, 1, 1},
	{-3, 3, -2, -1},
	{0, 0, 1, 0},
	{1, 0, 0, 0},
}

// Hermite samples the cubic Hermite curve from p1 to p2 at n interior points
// t = i/(n+1), i = 1..n. The tangents are scaled by n so velocities are
// expressed per clip rather than per unit parameter. Neither endpoint is
// part of the result; n < 1 yields nil.
func Hermite(p1, p2 Vec3, n int, t1, t2 Vec3) []Vec3 {
	if n < 1 {
		return nil
	}
	scale := float64(n)
	ctrl := [4]Vec3{p1, p2, t1.Scale(scale), t2.Scale(scale)}

	out := make([]Vec3, n)
	denom := float64(n + 1)
	for i := 1; i <= n; i++ {
		t := float64(i) / denom
		powers := [4]float64{t * t * t, t * t, t, 1}

		// weights = powers · hermiteBasis
		var weights [4]float64
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				weights[col] += powers[row] * hermiteBasis[row][col]
			}
		}

		var p Vec3
		for k, w := range weights {
			p = p.Add(ctrl[k].Scale(w))
		}
		out[i-1] = p
	}
	return out
}
