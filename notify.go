package replica

import (
	"slices"

	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir/kpath"
)

// Observer receives change events.
type Observer interface {
	Observe(*Event)
}

type ObserverFunc func(*Event)

func (f ObserverFunc) Observe(e *Event) { f(e) }

// Subscription is a registered Observer.
type Subscription struct {
	obs    Observer
	scope  kpath.Path
	where  func(*Event) bool
	active bool
	hub    *hub
}

type SubscribeOption func(*Subscription)

// AtPath limits a subscription to events whose path is path, one of its
// ancestors, or one of its descendants.
func AtPath(path string) SubscribeOption {
	return func(s *Subscription) { s.scope = kpath.Normalize(path) }
}

// Where limits a subscription to events for which f returns true. Multiple
// Where options must all hold.
func Where(f func(*Event) bool) SubscribeOption {
	return func(s *Subscription) {
		prev := s.where
		if prev == nil {
			s.where = f
			return
		}
		s.where = func(ev *Event) bool { return prev(ev) && f(ev) }
	}
}

// Unsubscribe stops delivery to the subscription. It may be called from an
// observer; calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

func (s *Subscription) Active() bool {
	return s.active
}

func (s *Subscription) matches(ev *Event) bool {
	if s.scope != nil && !kpath.Overlaps(s.scope, ev.Path) {
		return false
	}
	if s.where != nil && !s.where(ev) {
		return false
	}
	return true
}

// hub keeps subscriptions in registration order.
type hub struct {
	subs []*Subscription
}

func (h *hub) add(obs Observer, opts ...SubscribeOption) *Subscription {
	s := &Subscription{obs: obs, active: true, hub: h}
	for _, opt := range opts {
		opt(s)
	}
	h.subs = append(h.subs, s)
	return s
}

func (h *hub) remove(s *Subscription) {
	if !s.active {
		return
	}
	s.active = false
	h.subs = slices.DeleteFunc(h.subs, func(x *Subscription) bool { return x == s })
}

// emit delivers ev to the subscriptions registered when emit is called, in
// registration order. Subscriptions removed before they are reached are
// skipped.
func (h *hub) emit(ev *Event) {
	subs := slices.Clone(h.subs)
	if debug.Emit() {
		debug.Logf("emit %s to %d observers\n", ev, len(subs))
	}
	for _, s := range subs {
		if !s.active || !s.matches(ev) {
			continue
		}
		s.obs.Observe(ev)
	}
}
