//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	cachepg "nameorigin/internal/cache/postgres"
	"nameorigin/pkg/platform/sentinel"
	"nameorigin/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *cachepg.Store
	mu       sync.Mutex
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *PostgresStoreSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = cachepg.New(s.postgres.DB, cachepg.WithClock(s.clock))
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "cache_entries"))
}

func (s *PostgresStoreSuite) TestMissReturnsNotFound() {
	_, err := s.store.Get(context.Background(), "name:nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSetOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "name:maria", []byte("v1"), time.Hour))
	s.Require().NoError(s.store.Set(ctx, "name:maria", []byte("v2"), time.Hour))

	got, err := s.store.Get(ctx, "name:maria")
	s.Require().NoError(err)
	s.Equal("v2", string(got))
}

func (s *PostgresStoreSuite) TestExpiryAndPurge() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "country:RO", []byte("{}"), 24*time.Hour))
	s.Require().NoError(s.store.Set(ctx, "country:BR", []byte("{}"), 48*time.Hour))

	s.advance(24 * time.Hour)
	_, err := s.store.Get(ctx, "country:RO")
	s.ErrorIs(err, sentinel.ErrNotFound)

	purged, err := s.store.PurgeExpired(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), purged)

	_, err = s.store.Get(ctx, "country:BR")
	s.NoError(err)
}
