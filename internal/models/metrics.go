package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for the admin dashboard.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	AvailabilityComputations uint64    `json:"availability_computations"`
	MaterializedReserves     uint64    `json:"materialized_reserves"`
	MaterializerSkips        uint64    `json:"materializer_skips"`
	MaterializerFailures     uint64    `json:"materializer_failures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
