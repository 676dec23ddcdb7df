package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cap2geojson "github.com/World-Meteorological-Organization/cap2geojson"
	"github.com/World-Meteorological-Organization/cap2geojson/internal/observability"
)

// AlertTransformer implements Transformer by running CAP documents through
// the conversion core.
type AlertTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an AlertTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *AlertTransformer {
	return &AlertTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

// Transform converts one raw CAP XML document into a feature message keyed
// by the alert identifier, with cap_identifier and converted_at headers.
func (t *AlertTransformer) Transform(_ context.Context, raw RawDocument) (FeatureMessage, error) {
	start := time.Now()

	alert, err := cap2geojson.ParseAlert(raw.Value)
	if err != nil {
		return FeatureMessage{}, err
	}

	fc, err := cap2geojson.Convert(alert)
	if err != nil {
		return FeatureMessage{}, err
	}

	payload, err := json.Marshal(fc)
	if err != nil {
		return FeatureMessage{}, fmt.Errorf("serialize feature collection: %w", err)
	}

	t.metrics.ConversionsTotal.Inc()
	t.metrics.ConversionDuration.Observe(time.Since(start).Seconds())

	return FeatureMessage{
		Key:   []byte(alert.Identifier),
		Value: payload,
		Headers: map[string]string{
			"cap_identifier": alert.Identifier,
			"converted_at":   clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
