package realtime

// Broadcaster fans an event out to all connected viewers.  Emit never
// blocks the caller and never fails the surrounding request: delivery
// errors are logged and dropped.  Handlers receive a Broadcaster by
// injection; there is no process-global socket reference.
type Broadcaster interface {
	Emit(event string, data any)
}

// Noop is the Broadcaster used when neither a hub nor a relay is
// configured.
type Noop struct{}

func (Noop) Emit(string, any) {}
