// Package publishers delivers harvest-completed events to configured
// sinks: a generic HTTP endpoint or a cloud queue (AWS SQS, AWS SNS,
// GCP Pub/Sub). Sinks are declared in a YAML/JSON file with ${ENV}
// expansion and built through a type registry.
package publishers

import (
	"context"
	"time"

	"github.com/coinpulse/newsharvest/internal/logger"
)

// Event announces one finished harvest run.
type Event struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	WindowStart string    `json:"window_start"`
	WindowEnd   string    `json:"window_end"`
	Records     int       `json:"records"`
	JSONPath    string    `json:"json_path,omitempty"`
	CSVPath     string    `json:"csv_path,omitempty"`
	HarvestedAt time.Time `json:"harvested_at"`
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// PublishAll sends the event to every publisher, logging failures and
// continuing; a failed sink never blocks the others. Returns the
// number of successful deliveries.
func PublishAll(ctx context.Context, pubs []Publisher, evt Event, log logger.Logger) int {
	log = ensureLogger(log)

	delivered := 0
	for _, pub := range pubs {
		if err := pub.Publish(ctx, evt); err != nil {
			log.ErrorObj("event delivery failed", "publish_error", map[string]any{
				"publisher_id": pub.ID(),
				"type":         pub.Type(),
				"error":        err.Error(),
			})
			continue
		}
		delivered++
	}
	return delivered
}

func ensureLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
