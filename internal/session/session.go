// Package session keeps per-session key/value state for authenticated users.
//
// Values are JSON encoded, so anything stored must be a flat serializable
// record. Each session is addressed by an opaque id issued at login.
package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store opens sessions by id.
type Store interface {
	Open(id string) Session
}

// Session is the state attached to a single session id.
type Session interface {
	ID() string
	// Get decodes the value under key into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Clear(ctx context.Context, key string) error
	// Destroy drops every key of the session.
	Destroy(ctx context.Context) error
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode session value %q: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode session value %q: %w", key, err)
	}
	return nil
}
