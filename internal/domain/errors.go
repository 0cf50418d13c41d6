package domain

import "errors"

// ErrInvalidInput marks malformed caller input (bad profile, geometry, or
// thresholds). It is detected and reported before any simulation step runs.
var ErrInvalidInput = errors.New("invalid input")

// ErrCollaboratorUnavailable marks a missing external input: the road-network
// geometry or the station catalog could not be obtained. It is surfaced
// immediately, without entering the planning state machine.
var ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
