package hlheuristic

import "math"

const simplexEps = 1e-9

// simplexTableau is a dense two-phase simplex tableau solving
// `min c^T x  s.t.  A x >= b, x >= 0` via surplus and artificial
// variables, pivoting with Bland's rule so the method terminates despite
// degenerate pivots (spec.md §4.7/§9: "must handle degeneracy via
// Bland's rule; no need for sparsity").
type simplexTableau struct {
	m, n    int // constraint rows; original variable count
	cols    int // n (original) + m (surplus) + m (artificial)
	tab     [][]float64
	basis   []int
}

// newSimplexTableau builds the initial tableau for `A x >= b` with all
// rows made feasible for b >= 0 by introducing a surplus variable
// (coefficient -1) and an artificial variable (coefficient +1, initially
// basic) per row.
func newSimplexTableau(a [][]float64, b []float64) *simplexTableau {
	m := len(b)
	n := 0
	if m > 0 {
		n = len(a[0])
	}
	cols := n + m + m
	tab := make([][]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, cols+1)
		copy(row, a[i])
		row[n+i] = -1
		row[n+m+i] = 1
		row[cols] = b[i]
		tab[i] = row
	}
	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + m + i
	}
	return &simplexTableau{m: m, n: n, cols: cols, tab: tab, basis: basis}
}

// reducedCosts computes, for the given cost vector c (length cols,
// zero-padded for surplus/artificial columns), the reduced cost of every
// column under the current basis.
func (s *simplexTableau) reducedCosts(c []float64) []float64 {
	red := make([]float64, s.cols)
	for j := 0; j < s.cols; j++ {
		z := 0.0
		for i := 0; i < s.m; i++ {
			z += c[s.basis[i]] * s.tab[i][j]
		}
		red[j] = c[j] - z
	}
	return red
}

// pivot performs Gauss-Jordan elimination making column `col` the basic
// variable of row `row`.
func (s *simplexTableau) pivot(row, col int) {
	piv := s.tab[row][col]
	for j := 0; j <= s.cols; j++ {
		s.tab[row][j] /= piv
	}
	for i := 0; i < s.m; i++ {
		if i == row {
			continue
		}
		factor := s.tab[i][col]
		if factor == 0 {
			continue
		}
		for j := 0; j <= s.cols; j++ {
			s.tab[i][j] -= factor * s.tab[row][j]
		}
	}
	s.basis[row] = col
}

// run executes simplex iterations against cost vector c, skipping any
// column index in `forbidden` as a candidate entering variable (used in
// phase 2 to keep artificial variables locked out). Bland's rule: the
// entering column is the smallest index with a negative reduced cost;
// the leaving row is chosen by the minimum ratio test, breaking ties by
// smallest basic-variable index.
func (s *simplexTableau) run(c []float64, forbidden map[int]bool) {
	for iter := 0; iter < 10000; iter++ {
		red := s.reducedCosts(c)

		enter := -1
		for j := 0; j < s.cols; j++ {
			if forbidden[j] {
				continue
			}
			if red[j] < -simplexEps {
				enter = j
				break
			}
		}
		if enter == -1 {
			return // optimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < s.m; i++ {
			if s.tab[i][enter] <= simplexEps {
				continue
			}
			ratio := s.tab[i][s.cols] / s.tab[i][enter]
			if ratio < bestRatio-simplexEps ||
				(ratio < bestRatio+simplexEps && (leave == -1 || s.basis[i] < s.basis[leave])) {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return // unbounded; cannot occur for our bounded vertex-cover LP
		}
		s.pivot(leave, enter)
	}
}

// objective returns the current value of cost vector c under the
// present basic feasible solution.
func (s *simplexTableau) objective(c []float64) float64 {
	total := 0.0
	for i := 0; i < s.m; i++ {
		total += c[s.basis[i]] * s.tab[i][s.cols]
	}
	return total
}

// solution extracts the values of the first n (original) variables.
func (s *simplexTableau) solution() []float64 {
	x := make([]float64, s.n)
	for i := 0; i < s.m; i++ {
		if s.basis[i] < s.n {
			x[s.basis[i]] = s.tab[i][s.cols]
		}
	}
	return x
}

// solveLP solves `min sum(x) s.t. A x >= b, x >= 0` via two-phase
// simplex and returns the optimal objective value. feasible is false
// when phase 1 cannot drive the artificial variables to zero (the
// constraints admit no solution); an empty constraint set yields
// (0, true).
func solveLP(a [][]float64, b []float64) (obj float64, feasible bool) {
	m := len(b)
	if m == 0 {
		return 0, true
	}
	s := newSimplexTableau(a, b)
	n := s.n

	phase1Cost := make([]float64, s.cols)
	for i := 0; i < m; i++ {
		phase1Cost[n+m+i] = 1
	}
	s.run(phase1Cost, nil)
	if s.objective(phase1Cost) > 1e-6 {
		return 0, false
	}

	// Drive out any artificial variable still basic at (necessarily) zero
	// value, to keep phase 2's tableau free of degenerate artificial rows.
	for i := 0; i < s.m; i++ {
		if s.basis[i] < n+m {
			continue
		}
		for j := 0; j < n+m; j++ {
			if math.Abs(s.tab[i][j]) > simplexEps {
				s.pivot(i, j)
				break
			}
		}
	}

	forbidden := make(map[int]bool, m)
	for i := 0; i < m; i++ {
		forbidden[n+m+i] = true
	}

	phase2Cost := make([]float64, s.cols)
	for j := 0; j < n; j++ {
		phase2Cost[j] = 1
	}
	s.run(phase2Cost, forbidden)
	return s.objective(phase2Cost), true
}
