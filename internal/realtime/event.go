// Package realtime propagates entity mutations to connected viewers.  Two
// delivery paths implement the same Broadcaster contract: an in-process
// WebSocket hub, and an HTTP relay to an externally hosted socket server
// for deployments where the web tier cannot hold persistent connections.
// Delivery is at-most-once and best-effort; reconnecting clients re-fetch
// state over REST.
package realtime

// Event names follow "<entity>:<action>".  Create and update events carry
// the full record; delete events carry only {id}.
const (
	ScheduleNew    = "schedule:new"
	ScheduleUpdate = "schedule:update"
	ScheduleDelete = "schedule:delete"

	AnnouncementNew    = "announcement:new"
	AnnouncementUpdate = "announcement:update"
	AnnouncementDelete = "announcement:delete"

	EventNew    = "event:new"
	EventUpdate = "event:update"
	EventDelete = "event:delete"

	MenuNew    = "menu:new"
	MenuUpdate = "menu:update"
	MenuDelete = "menu:delete"
)

// Envelope is the wire frame pushed to sockets and posted to the relay's
// emit endpoint.  There is no versioning and no acknowledgment.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// DeletePayload is the data carried by delete events.
type DeletePayload struct {
	ID uint64 `json:"id"`
}
