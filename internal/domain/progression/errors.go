package progression

import "errors"

// Sentinel kinds for progression errors. These allow errors.Is/As from
// callers.
var (
	ErrBadLift        = errors.New("weight and reps must be positive")
	ErrUnknownFormula = errors.New("unknown 1RM formula")
	ErrBadRPE         = errors.New("rpe must be between 5 and 10 in half steps")
	ErrBadVolume      = errors.New("sets, reps and week must be positive")
)
