// Package service provides infrastructure services for the permission engine.
package service

import (
	"time"

	"github.com/google/uuid"
)

// UUIDSource produces UUIDv7 identifiers for permissions and requests.
// UUIDv7 keeps ids time-sortable, matching insertion order.
type UUIDSource struct{}

// NewUUIDSource creates a new UUIDSource.
func NewUUIDSource() *UUIDSource {
	return &UUIDSource{}
}

// NewID returns a fresh UUIDv7 string.
func (s *UUIDSource) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// UTCClock supplies wall-clock timestamps in milliseconds since epoch.
type UTCClock struct{}

// NewUTCClock creates a new UTCClock.
func NewUTCClock() *UTCClock {
	return &UTCClock{}
}

// NowMillis returns the current UTC time in milliseconds since epoch.
func (c *UTCClock) NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
