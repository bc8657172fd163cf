// Package store persists contacts. Postgres is the production store; Memory
// serves local runs without a database and tests.
package store

import (
	"context"

	"github.com/JonMunkholm/crmimport/internal/core"
)

// ContactStore creates and lists contacts.
type ContactStore interface {
	core.ContactCreator

	// List returns every contact in creation order.
	List(ctx context.Context) ([]core.Contact, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close()
}

var (
	_ ContactStore = (*Postgres)(nil)
	_ ContactStore = (*Memory)(nil)
)
