// Package store persists snapshots under namespaced string keys.
//
// Each list owns exactly one key and never reads or writes another list's
// key. Values are opaque serialized snapshots; the backends do not inspect
// them.
package store

import "vida/internal/model"

// KV is the persistence contract consumed by the collections.
//
// Get returns the last value stored under key, with ok=false when the key
// was never set. Set replaces the value under key.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// Keys, one namespace per list.
const (
	AssetsKey      = "assets"
	ReflectionsKey = "reflections"
)

// GoalsKey returns the key holding one life-area's goal list.
func GoalsKey(area model.Area) string {
	return "goals:" + string(area)
}
