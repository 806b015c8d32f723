//go:build integration

// Package testutil provides shared fixtures and the MongoDB testcontainer.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoDBContainer is a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a mongo:7.0 container.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	c, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("start MongoDB container: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("MongoDB connection string: %w", err)
	}
	return &MongoDBContainer{Container: c, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate container: %w", err)
	}
	return nil
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
)

// SetupTestMainWithMongoDB starts one container for the package, runs the
// tests and tears it down. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() { shared, sharedErr = SetupMongoDB(ctx) })
	if sharedErr != nil {
		panic(sharedErr)
	}

	code := m.Run()

	if err := shared.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: cleanup shared MongoDB container: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the package container.
func GetSharedContainerURI() string {
	if shared == nil {
		panic("shared MongoDB container not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a unique database name.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			return '_'
		}
		return r
	}, testName)
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
