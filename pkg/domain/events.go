package domain

import "time"

// EventType defines the placement operation an event records.
type EventType string

const (
	EventOpen     EventType = "open"
	EventRelocate EventType = "relocate"
	EventShow     EventType = "show"
	EventHide     EventType = "hide"
	EventFocus    EventType = "focus"
	EventLink     EventType = "link"
	EventDestroy  EventType = "destroy"
)

// Event records one effective placement operation on an outlet.
// Operations that turn into no-ops do not emit events.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	Type           EventType `json:"type"`
	OutletID       string    `json:"outlet_id"`
	ItemID         string    `json:"item_id"`
	From           Location  `json:"from,omitempty"`
	To             Location  `json:"to,omitempty"`
	PaneID         string    `json:"pane_id,omitempty"`
	Split          bool      `json:"split,omitempty"` // a new center pane was created
	HiddenInCenter bool      `json:"hidden_in_center,omitempty"`
	TargetItemID   string    `json:"target_item_id,omitempty"` // link target
}

// LifecycleHooks defines callbacks for placement observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnPlace   func(*Event) // open and relocate
	OnShow    func(*Event)
	OnHide    func(*Event)
	OnFocus   func(*Event)
	OnLink    func(*Event)
	OnDestroy func(*Event)
}

// Emit routes an event to the matching hook.
func (h LifecycleHooks) Emit(e *Event) {
	var fn func(*Event)
	switch e.Type {
	case EventOpen, EventRelocate:
		fn = h.OnPlace
	case EventShow:
		fn = h.OnShow
	case EventHide:
		fn = h.OnHide
	case EventFocus:
		fn = h.OnFocus
	case EventLink:
		fn = h.OnLink
	case EventDestroy:
		fn = h.OnDestroy
	}
	if fn != nil {
		fn(e)
	}
}

// ComposeHooks returns hooks that call every given hook set in order.
func ComposeHooks(all ...LifecycleHooks) LifecycleHooks {
	each := func(pick func(LifecycleHooks) func(*Event)) func(*Event) {
		var fns []func(*Event)
		for _, h := range all {
			if fn := pick(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(e *Event) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}
	return LifecycleHooks{
		OnPlace:   each(func(h LifecycleHooks) func(*Event) { return h.OnPlace }),
		OnShow:    each(func(h LifecycleHooks) func(*Event) { return h.OnShow }),
		OnHide:    each(func(h LifecycleHooks) func(*Event) { return h.OnHide }),
		OnFocus:   each(func(h LifecycleHooks) func(*Event) { return h.OnFocus }),
		OnLink:    each(func(h LifecycleHooks) func(*Event) { return h.OnLink }),
		OnDestroy: each(func(h LifecycleHooks) func(*Event) { return h.OnDestroy }),
	}
}
