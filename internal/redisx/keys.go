package redisx

import "time"

const (
	// Cached product catalog: products:all -> JSON array
	KeyProductList = "products:all"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductList = 30 * time.Second
	TTLDedup       = 48 * time.Hour
)
