package domain

// State is the lifecycle state of an outlet.
type State string

const (
	StateUnopened  State = "unopened"
	StatePlaced    State = "placed"
	StateDestroyed State = "destroyed"
)
