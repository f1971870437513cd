package fieldstore_test

import (
	"context"
	"testing"

	"github.com/openassess/openassess/internal/db"
	"github.com/openassess/openassess/internal/fieldstore"
)

func stores(t *testing.T) map[string]fieldstore.Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return map[string]fieldstore.Store{
		"memory": fieldstore.NewInMemoryStore(),
		"sqlite": fieldstore.NewSQLStore(dbh, "sqlite"),
	}
}

func TestGetSet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "u-1", "title")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if ok {
				t.Fatal("unset field reported as set")
			}

			if err := s.Set(ctx, "u-1", "title", `"Essay"`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := s.Get(ctx, "u-1", "title")
			if err != nil || !ok || v != `"Essay"` {
				t.Fatalf("Get = %q, %v, %v", v, ok, err)
			}

			// Overwrite.
			if err := s.Set(ctx, "u-1", "title", `"Revised"`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			v, _, _ = s.Get(ctx, "u-1", "title")
			if v != `"Revised"` {
				t.Fatalf("overwrite lost: %q", v)
			}

			// Fields are scoped per usage id.
			if _, ok, _ := s.Get(ctx, "u-2", "title"); ok {
				t.Fatal("field leaked across usage ids")
			}
		})
	}
}
