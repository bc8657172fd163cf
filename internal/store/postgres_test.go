package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/crmimport/internal/core"
)

// openTestDB connects to TEST_DATABASE_URL or skips the test.
func openTestDB(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn, PoolConfig{MaxConns: 2})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if _, err := db.pool.Exec(ctx, "TRUNCATE contacts"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestPostgres_CreateManyAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := []core.CandidateContact{candidate("a@x.com"), candidate("b@x.com")}
	in[1].Tags = []string{"vip"}

	created, err := db.CreateMany(ctx, in)
	if err != nil {
		t.Fatalf("CreateMany() error = %v", err)
	}
	if len(created) != 2 || created[0].ID == "" || created[0].ID == created[1].ID {
		t.Fatalf("created = %+v, want two distinct ids", created)
	}

	all, err := db.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() = %d contacts, want 2", len(all))
	}
	if all[0].ID != created[0].ID || all[1].Tags[0] != "vip" {
		t.Errorf("List() = %+v, want insertion order with tags", all)
	}
}

func TestPostgres_CreateManyIsAtomic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	bad := candidate("b@x.com")
	bad.Status = "archived"

	_, err := db.CreateMany(ctx, []core.CandidateContact{candidate("a@x.com"), bad})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("CreateMany() error = %v, want a PgError", err)
	}

	all, err := db.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("List() = %d contacts after failed batch, want 0", len(all))
	}
}
