package audit

import "log/slog"

type Event struct {
	BusinessID *uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Dispatcher writes audit events off the request path. The queue drops on
// overflow: audit must never break the API.
type Dispatcher struct {
	logger *Logger
	slog   *slog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, sl *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		slog:   sl,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BusinessID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.slog.Warn("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch is nil-safe so callers without an audit trail wired (tests) can
// pass a nil dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}
