// Package storage is the durable key/value port behind the session stores.
// Each store owns exactly one key and writes its whole state as a single blob.
package storage

import "context"

// Local is the durable local-storage port.
type Local interface {
	// Get returns the value stored at key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored at key.
	Set(ctx context.Context, key, value string) error
}

// Namespace prefixes every key with scope, isolating one session's keys from another's.
func Namespace(local Local, scope string) Local {
	return &namespaced{local: local, prefix: scope + ":"}
}

type namespaced struct {
	local  Local
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.local.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.local.Set(ctx, n.prefix+key, value)
}
