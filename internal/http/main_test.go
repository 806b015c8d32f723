//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain sets up a shared MongoDB container for all HTTP integration tests in this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// newMongoAPI wires the router over MongoDB stores in a database unique to t.
func newMongoAPI(t *testing.T) (*testAPI, *repository.MongoDB) {
	t.Helper()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})

	repos, _ := repository.NewMongoRepositories(db, nil)
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return newTestAPI(t, repos, cfg), db
}
