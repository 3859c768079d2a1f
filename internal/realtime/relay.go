package realtime

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Relay is the delivery path for deployments where the web tier cannot
// host persistent connections: events are forwarded as HTTP POSTs to the
// emit endpoint of the standalone socket server.  Emits are fire-and-forget
// with a single attempt; a failed delivery is logged, never retried, and
// never surfaces to the mutation that triggered it.
type Relay struct {
	baseURL string
	client  *http.Client
}

// NewRelay builds a relay targeting the socket server at baseURL.
func NewRelay(baseURL string) *Relay {
	return &Relay{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Emit implements Broadcaster.  The POST runs on its own goroutine so the
// mutating request never waits on the relay.
func (r *Relay) Emit(event string, data any) {
	body, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("relay emit: marshal failed")
		return
	}
	go r.post(event, body)
}

func (r *Relay) post(event string, body []byte) {
	resp, err := r.client.Post(r.baseURL+"/api/emit", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("relay emit failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("event", event).Msg("relay emit rejected")
		return
	}
	var ack struct {
		Clients int `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil {
		log.Debug().Str("event", event).Int("clients", ack.Clients).Msg("relay emit delivered")
	}
}
