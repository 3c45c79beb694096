package dsp

import "sort"

// FindPeaks locates local maxima in x subject to two constraints: kept
// peaks are at least minDistance samples apart (taller peaks win the
// suppression), and each must rise at least minProminence above the
// higher of the two valleys separating it from taller terrain. Plateau
// maxima report their middle sample. The result is strictly ascending.
func FindPeaks(x []float64, minDistance int, minProminence float64) []int {
	if minDistance < 1 {
		minDistance = 1
	}

	candidates := localMaxima(x)
	candidates = enforceDistance(x, candidates, minDistance)

	if minProminence > 0 {
		kept := candidates[:0]
		for _, p := range candidates {
			if prominence(x, p) >= minProminence {
				kept = append(kept, p)
			}
		}
		candidates = kept
	}

	return candidates
}

// localMaxima returns the indices of strict local maxima, resolving
// flat tops to their midpoints.
func localMaxima(x []float64) []int {
	peaks := []int{}
	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// climb the plateau, if any
		j := i
		for j < len(x)-1 && x[j+1] == x[i] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[i] {
			peaks = append(peaks, (i+j)/2)
		}
		i = j + 1
	}
	return peaks
}

// enforceDistance drops peaks closer than minDistance to a taller
// kept peak, considering peaks in descending height order.
func enforceDistance(x []float64, peaks []int, minDistance int) []int {
	if len(peaks) < 2 {
		return peaks
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	removed := make([]bool, len(peaks))
	for _, idx := range order {
		if removed[idx] {
			continue
		}
		for k := idx - 1; k >= 0 && peaks[idx]-peaks[k] < minDistance; k-- {
			removed[k] = true
		}
		for k := idx + 1; k < len(peaks) && peaks[k]-peaks[idx] < minDistance; k++ {
			removed[k] = true
		}
	}

	out := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if !removed[i] {
			out = append(out, p)
		}
	}
	return out
}

// prominence measures how far the peak at p rises above the higher of
// its two surrounding valleys. Each valley is the minimum between the
// peak and the nearest sample exceeding it (or the signal edge).
func prominence(x []float64, p int) float64 {
	leftMin := x[p]
	for i := p - 1; i >= 0; i-- {
		if x[i] > x[p] {
			break
		}
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}

	rightMin := x[p]
	for i := p + 1; i < len(x); i++ {
		if x[i] > x[p] {
			break
		}
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return x[p] - base
}
