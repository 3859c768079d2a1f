package handler // handler defines http handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/conference-companion/internal/queue"
	"github.com/iliyamo/conference-companion/internal/realtime"
	audit_publisher "github.com/iliyamo/conference-companion/internal/service"
)

// Effects bundles the two post-mutation side channels shared by every
// mutating handler: the audit trail and the real-time fan-out.  Both are
// strictly best-effort; neither can change the HTTP response of the
// mutation that triggered them.
type Effects struct {
	AMQPURL   string // empty disables audit publishing
	Broadcast realtime.Broadcaster
}

// Audit publishes one audit entry for a completed mutation.  Publish
// failures are logged inside the publisher and swallowed here.
func (e *Effects) Audit(c echo.Context, action, resourceType string, resourceID uint64, changes any) {
	if e == nil || e.AMQPURL == "" {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		return // anonymous mutations (public complaint form) are not audited
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		raw = []byte("{}")
	}
	ev := queue.AuditEvent{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   strconv.FormatUint(resourceID, 10),
		Changes:      raw,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := audit_publisher.PublishAuditEvent(ctx, e.AMQPURL, ev); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("audit entry dropped")
		}
	}()
}

// Emit fans an entity change out to connected viewers.
func (e *Effects) Emit(event string, data any) {
	if e == nil || e.Broadcast == nil {
		return
	}
	e.Broadcast.Emit(event, data)
}

// getUserID extracts the user_id claim from echo.Context and converts it
// to uint64.  JWT numeric claims come back as float64 from MapClaims.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseUintParam parses a numeric query parameter.
func parseUintParam(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// parseRFC3339 parses a required timestamp field, normalizing to UTC.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
