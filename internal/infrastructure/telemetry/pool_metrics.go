package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// PoolStatser reports connection pool statistics, as *sql.DB does
type PoolStatser interface {
	Stats() sql.DBStats
}

// RegisterPoolMetrics exports db_pool_connections (by state) and db_pool_connections_max.
// Values are read from the pool whenever the reader collects, so no goroutine is started.
// The returned registration should be unregistered before the pool is closed.
func RegisterPoolMetrics(meter metric.Meter, pool PoolStatser) (metric.Registration, error) {
	connections, err := meter.Int64ObservableGauge(
		"db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	maxConnections, err := meter.Int64ObservableGauge(
		"db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := pool.Stats()
		o.ObserveInt64(maxConnections, int64(stats.MaxOpenConnections))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrDBPoolState.String("open")))
		return nil
	}, connections, maxConnections)
}
