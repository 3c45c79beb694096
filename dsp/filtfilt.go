package dsp

import "github.com/pkg/errors"

// FiltFilt applies the filter described by b and a forward and then
// backward over x, canceling the phase distortion a single pass would
// introduce. Peak positions therefore survive filtering, which the
// delay and transit-time estimates depend on. The input is extended at
// both ends by odd reflection before filtering to suppress edge
// transients, matching the conventional filtfilt contract.
func FiltFilt(b, a, x []float64) ([]float64, error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, errors.New("filter denominator must be normalizable")
	}

	b, a = normalizeCoeffs(b, a)

	ntaps := len(b)
	if len(a) > ntaps {
		ntaps = len(a)
	}
	padLen := 3 * (ntaps - 1)
	if len(x) <= padLen {
		return nil, errors.Errorf(
			"input of length %d is too short for a filter needing %d padding samples",
			len(x), padLen)
	}

	ext := oddExtend(x, padLen)

	zi := lfilterZi(b, a)

	// forward pass
	z0 := make([]float64, len(zi))
	for i := range zi {
		z0[i] = zi[i] * ext[0]
	}
	y := lfilter(b, a, ext, z0)

	// backward pass
	reverse(y)
	for i := range zi {
		z0[i] = zi[i] * y[0]
	}
	y = lfilter(b, a, y, z0)
	reverse(y)

	return y[padLen : padLen+len(x)], nil
}

// normalizeCoeffs pads b and a to equal length and scales both so that
// a[0] == 1.
func normalizeCoeffs(b, a []float64) ([]float64, []float64) {
	n := len(b)
	if len(a) > n {
		n = len(a)
	}

	nb := make([]float64, n)
	na := make([]float64, n)
	copy(nb, b)
	copy(na, a)

	if na[0] != 1 {
		for i := range nb {
			nb[i] /= a[0]
		}
		for i := range na {
			na[i] /= a[0]
		}
	}
	return nb, na
}

// lfilter runs a direct form II transposed IIR filter over x with
// initial state zi. Coefficients must be normalized to equal length
// with a[0] == 1.
func lfilter(b, a, x, zi []float64) []float64 {
	n := len(b) - 1
	if n == 0 {
		y := make([]float64, len(x))
		for i, v := range x {
			y[i] = b[0] * v
		}
		return y
	}

	z := make([]float64, n)
	copy(z, zi)

	y := make([]float64, len(x))
	for i, v := range x {
		yi := b[0]*v + z[0]
		for j := 0; j < n-1; j++ {
			z[j] = b[j+1]*v + z[j+1] - a[j+1]*yi
		}
		z[n-1] = b[n]*v - a[n]*yi
		y[i] = yi
	}
	return y
}

// lfilterZi computes the filter state matching a steady-state response
// to a unit step, so that scaling it by the first input sample avoids
// start-up transients. It solves (I - A^T) zi = B where A is the
// companion matrix of a.
func lfilterZi(b, a []float64) []float64 {
	n := len(a) - 1
	if n < 1 {
		return nil
	}

	m := make([][]float64, n)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		m[i][i] = 1
		rhs[i] = b[i+1] - a[i+1]*b[0]
	}
	// subtract companion(a)^T: first column is -a[1:], superdiagonal is 1
	for i := 0; i < n; i++ {
		m[i][0] -= -a[i+1]
		if i+1 < n {
			m[i][i+1] -= 1
		}
	}

	return solveLinear(m, rhs)
}

// solveLinear solves m * x = rhs by Gaussian elimination with partial
// pivoting. The systems here are tiny (filter order sized), so no
// factorization library is warranted.
func solveLinear(m [][]float64, rhs []float64) []float64 {
	n := len(rhs)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if abs(m[row][col]) > abs(m[pivot][col]) {
				pivot = row
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		if m[col][col] == 0 {
			continue
		}

		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			for k := col; k < n; k++ {
				m[row][k] -= f * m[col][k]
			}
			rhs[row] -= f * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= m[row][k] * x[k]
		}
		if m[row][row] != 0 {
			x[row] = sum / m[row][row]
		}
	}
	return x
}

// oddExtend pads x with padLen samples of odd reflection on both ends.
func oddExtend(x []float64, padLen int) []float64 {
	out := make([]float64, 0, len(x)+2*padLen)
	for i := padLen; i >= 1; i-- {
		out = append(out, 2*x[0]-x[i])
	}
	out = append(out, x...)
	last := len(x) - 1
	for i := 1; i <= padLen; i++ {
		out = append(out, 2*x[last]-x[last-i])
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
