package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector to the bus so
// business metrics track published events.
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
