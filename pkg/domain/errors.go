package domain

import "errors"

// ErrConfiguration is returned at creation time when an outlet configuration is
// structurally invalid (unknown location, default location outside the allowed
// set, method collision in extend mode).
var ErrConfiguration = errors.New("invalid outlet configuration")

// ErrPlacementPrecondition is returned when center placement is requested from
// a base pane that does not belong to the center container, or when a dock
// location has no dock on the host. It indicates caller misuse.
var ErrPlacementPrecondition = errors.New("placement precondition violated")

// ErrOpenInFlight is returned when Open is called while a previous Open of the
// same outlet has not completed yet.
var ErrOpenInFlight = errors.New("open already in flight")

// ErrOutletNotFound is returned by sessions when an outlet ID is unknown.
var ErrOutletNotFound = errors.New("outlet not found")

// ErrItemNotFound is returned by sessions when an item ID is unknown.
var ErrItemNotFound = errors.New("item not found")

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownAction is returned when an outlet action name is not recognised.
var ErrUnknownAction = errors.New("unknown outlet action")
