package scalebar

import "math"

// ndivOrder is the preference order for bar divisions when several divide the
// length equally well.
var ndivOrder = []int{5, 4, 3, 2, 6, 1}

// ChooseNDiv returns the division count in [1, 6] that divides length most
// evenly, preferring 5, 4, 3, 2, 6 and then 1 on ties.
func ChooseNDiv(length float64) int {
	best, bestScore := ndivOrder[0], math.Inf(1)
	for _, n := range ndivOrder {
		if s := remainder(length, float64(n)); s < bestScore-1e-9 {
			best, bestScore = n, s
		}
	}
	return best
}

func remainder(v, n float64) float64 {
	r := math.Mod(math.Abs(v), n)
	// 0.3 mod 0.1 style float noise lands just under n
	if n-r < 1e-9*math.Max(1, math.Abs(v)) {
		return 0
	}
	return r
}
