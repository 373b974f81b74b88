package core

// Constraint restricts (negative) or pins (positive) a single agent's
// behaviour over a time window, per spec.md §3.
//
// Negative (Positive == false, the default): AgentID is forbidden from
// executing any move that conflicts with the swept region (From, To,
// [T1, T2]) considering the configured agent size. A wait constraint has
// From == To and excludes occupying From during (T1, T2).
//
// Positive (Positive == true, disjoint splitting): AgentID must execute
// exactly the move (From, To) starting at T1 (ending at T2). Every other
// agent implicitly receives the symmetric negative constraint.
type Constraint struct {
	AgentID  AgentID
	T1, T2   float64
	From, To NodeID
	Positive bool
}

// IsWait reports whether this constraint concerns a stationary occupancy.
func (c Constraint) IsWait() bool { return c.From == c.To }

// ConflictKind classifies a Conflict by how expensive it provably is to
// resolve (spec.md §3/§4.5).
type ConflictKind int

const (
	// NonCardinal: resolving the conflict need not raise either agent's cost.
	NonCardinal ConflictKind = iota
	// SemiCardinal: resolving the conflict provably raises exactly one
	// agent's individual cost.
	SemiCardinal
	// Cardinal: resolving the conflict provably raises both agents'
	// individual costs.
	Cardinal
)

// Conflict is a detected collision between two agents' moves.
type Conflict struct {
	AgentA, AgentB AgentID
	MoveA, MoveB   Move
	Overcost       float64
	Kind           ConflictKind
	Classified     bool
}
