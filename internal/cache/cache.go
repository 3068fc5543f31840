// Package cache provides the key-value cache used to memoise eligibility
// computations.
package cache

// Cache is a string key-value store with best-effort semantics: a miss or a
// failed write never fails the caller's request.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
