package replica

import "log/slog"

type Option func(*Replica)

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Replica) { r.log = l }
}
