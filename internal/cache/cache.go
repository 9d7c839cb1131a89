// Package cache keeps recently computed values around for a bounded time.
package cache

import "time"

// Cache defines a generic keyed cache.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	// Purge drops every entry.
	Purge()
	Size() int
}

// Clock returns the current time. Tests swap it to drive expiry.
type Clock func() time.Time
