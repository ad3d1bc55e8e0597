package replica

import (
	"github.com/signadot/tony-format/replica/ir"
)

// Match reports whether doc matches the pattern match. Objects match when
// every key of match is present in doc with a matching value; other keys of
// doc are ignored. A null in match matches any value. Scalars match when
// equal.
func Match(doc, match *ir.Node) bool {
	if doc == nil {
		return false
	}
	if match.Type == ir.NullType {
		return true
	}
	if match.IsObjectShaped() {
		if !doc.IsObjectShaped() {
			return false
		}
		return matchObj(doc, match)
	}
	if doc.Type != match.Type {
		return false
	}
	return ir.Equal(doc, match)
}

func matchObj(doc, match *ir.Node) bool {
	for i, field := range match.Fields {
		dv := ir.Get(doc, field)
		if dv == nil {
			return false
		}
		if !Match(dv, match.Values[i]) {
			return false
		}
	}
	return true
}

// Matching limits a subscription to events whose value matches pattern. The
// new value is used, or the old one for removals.
func Matching(pattern *ir.Node) SubscribeOption {
	pattern = pattern.Clone()
	return Where(func(ev *Event) bool {
		v := ev.NewValue
		if ev.Kind == Removed {
			v = ev.OldValue
		}
		return Match(v, pattern)
	})
}
