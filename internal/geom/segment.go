// Package geom implements the continuous-time geometric primitives the
// conflict detector needs: minimum distance between two moving disks over
// their overlapping time window, and the minimum wait offset that clears a
// conflict.
package geom

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func point(n *core.Node) r2.Point {
	return r2.Point{X: n.X, Y: n.Y}
}

// positionAt returns the position of a unit-speed move at time t, clamped
// to the move's own span (callers only ever query t within [t1, t2]).
func positionAt(m core.Move, p1, p2 r2.Point, t float64) r2.Point {
	dur := m.Duration()
	if dur <= 0 {
		return p1
	}
	frac := (t - m.T1) / dur
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return p1.Add(p2.Sub(p1).Mul(frac))
}

// SegmentConflict reports whether two agents' moves (interpreted as
// space-time line segments at unit speed) ever bring their centers closer
// than 2*agentSize - precision, over their overlapping time window.
//
// aFrom/aTo and bFrom/bTo are the endpoint positions of moveA and
// moveB respectively (From, To). When a conflict exists, waitOffset is the
// minimum delay that, applied to the start of moveA, removes the conflict
// (used by the high level to build a minimally-excluding wait constraint);
// it is only meaningful when conflict is true.
func SegmentConflict(moveA, moveB core.Move, aFrom, aTo, bFrom, bTo *core.Node, agentSize, precision float64) (conflict bool, tConflict float64, waitOffset float64) {
	hit, tStar := conflictAt(moveA, moveB, aFrom, aTo, bFrom, bTo, agentSize, precision)
	if !hit {
		return false, 0, 0
	}

	offsetDelta := minWaitOffset(moveA, aFrom, aTo, moveB, bFrom, bTo, agentSize, precision)
	return true, tStar, offsetDelta
}

// conflictAt computes whether the two moves conflict and, if so, the time
// of closest approach, without computing a wait offset (used internally by
// minWaitOffset's search so it doesn't recompute an offset on every probe).
func conflictAt(moveA, moveB core.Move, aFrom, aTo, bFrom, bTo *core.Node, agentSize, precision float64) (bool, float64) {
	lo := math.Max(moveA.T1, moveB.T1)
	hi := math.Min(moveA.T2, moveB.T2)
	if lo > hi {
		return false, 0
	}

	pa1, pa2 := point(aFrom), point(aTo)
	pb1, pb2 := point(bFrom), point(bTo)

	// Relative position as a function of t is affine (each position is
	// affine in t), so the squared distance is a quadratic in t. Minimize
	// analytically and clamp to the overlap window, per spec.md §4.1.
	da := pa2.Sub(pa1).Mul(1.0 / safeDur(moveA))
	db := pb2.Sub(pb1).Mul(1.0 / safeDur(moveB))

	// relPos(t) = (pa1 + da*(t-t1a)) - (pb1 + db*(t-t1b))
	offset := pa1.Sub(da.Mul(moveA.T1)).Sub(pb1.Sub(db.Mul(moveB.T1)))
	slope := da.Sub(db)

	threshold := 2*agentSize - precision

	// f(t) = |offset + slope*t|^2
	a := slope.Dot(slope)
	b := 2 * offset.Dot(slope)

	var tStar float64
	if a < 1e-12 {
		// Constant relative position over the window: any point works.
		tStar = lo
	} else {
		tStar = -b / (2 * a)
		if tStar < lo {
			tStar = lo
		} else if tStar > hi {
			tStar = hi
		}
	}

	rel := offset.Add(slope.Mul(tStar))
	if rel.Norm() >= threshold {
		return false, 0
	}
	return true, tStar
}

func safeDur(m core.Move) float64 {
	d := m.Duration()
	if d <= 0 {
		return 1
	}
	return d
}

// minWaitOffset searches for the minimum non-negative delay Delta such
// that delaying moveA's start (and end) by Delta removes the conflict with
// moveB, by binary search over Delta (the conflict predicate is monotone
// in practice for the unit-speed straight-line motions this module deals
// with: increasing Delta slides moveA's window later, which for a fixed
// moveB eventually separates the two time windows or the two positions).
func minWaitOffset(moveA core.Move, aFrom, aTo *core.Node, moveB core.Move, bFrom, bTo *core.Node, agentSize, precision float64) float64 {
	const maxOffset = 1 << 20
	lo, hi := 0.0, 1.0

	shifted := func(delta float64) core.Move {
		return core.Move{T1: moveA.T1 + delta, T2: moveA.T2 + delta, From: moveA.From, To: moveA.To}
	}

	stillConflicts := func(delta float64) bool {
		c, _ := conflictAt(shifted(delta), moveB, aFrom, aTo, bFrom, bTo, agentSize, precision)
		return c
	}

	// Grow hi until the conflict clears or we give up.
	for stillConflicts(hi) && hi < maxOffset {
		hi *= 2
	}
	if stillConflicts(hi) {
		return hi
	}

	for i := 0; i < 64 && hi-lo > precision/2; i++ {
		mid := (lo + hi) / 2
		if stillConflicts(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
