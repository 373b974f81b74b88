package core

import "github.com/pkg/errors"

// ErrRootInfeasible is wrapped and returned when any agent has no path
// under zero constraints (spec.md §7's RootInfeasible error kind).
var ErrRootInfeasible = errors.New("core: no feasible path exists for at least one agent under zero constraints")

// ErrInvalidMap is returned by map/grid construction helpers when the
// requested shape cannot be built (e.g. zero-size grid).
var ErrInvalidMap = errors.New("core: invalid map specification")
