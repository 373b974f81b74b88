package core

import "github.com/pkg/errors"

// AgentID uniquely identifies an agent within a Task.
type AgentID int

// Agent is a single participant in the instance: it must travel from
// Start to Goal.
type Agent struct {
	ID    AgentID
	Start NodeID
	Goal  NodeID
}

// Task is the ordered list of agents to plan for.
type Task struct {
	Agents []Agent
}

// NewTask builds a Task from an ordered agent slice.
func NewTask(agents []Agent) *Task {
	return &Task{Agents: agents}
}

// ErrSharedGoal is returned by Validate when two agents share a goal node:
// the "interval must extend to +inf" SIPP goal test makes that
// configuration unsatisfiable by construction (spec.md open question), so
// it is rejected as an input validation error rather than discovered by
// search failure.
var ErrSharedGoal = errors.New("core: two agents may not share a goal node")

// Validate checks that the task is well-formed against the given map:
// every start/goal must exist, and no two agents may share a goal.
func (t *Task) Validate(m *Map) error {
	goals := make(map[NodeID]AgentID, len(t.Agents))
	for _, a := range t.Agents {
		if m.NodeByID(a.Start) == nil {
			return errors.Wrapf(ErrUnknownNode, "agent %d start=%d", a.ID, a.Start)
		}
		if m.NodeByID(a.Goal) == nil {
			return errors.Wrapf(ErrUnknownNode, "agent %d goal=%d", a.ID, a.Goal)
		}
		if other, ok := goals[a.Goal]; ok {
			return errors.Wrapf(ErrSharedGoal, "agents %d and %d both target node %d", other, a.ID, a.Goal)
		}
		goals[a.Goal] = a.ID
	}
	return nil
}
