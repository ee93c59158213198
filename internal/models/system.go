package models

import "time"

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	TotalRows int `json:"total_rows"`
	TotalPage int `json:"total_page"`
}

// SystemMetrics is a lightweight aggregate snapshot for ops endpoints.
type SystemMetrics struct {
	ProgramsGenerated        uint64    `json:"programs_generated"`
	DeliveriesSent           uint64    `json:"deliveries_sent"`
	DeliveriesFailed         uint64    `json:"deliveries_failed"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
