package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is not set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	truncateAll(t, db)
	t.Cleanup(func() { truncateAll(t, db) })

	return db
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE attendance, locations, teams, users CASCADE")
	require.NoError(t, err)
}

func createTestUser(t *testing.T, db *database.DB, name, role string, teamID *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(), `
		INSERT INTO users (id, full_name, role, team_id)
		VALUES ($1, $2, $3, $4)
	`, id, name, role, teamID)
	require.NoError(t, err, fmt.Sprintf("create user %s", name))
	return id
}

func createTestTeam(t *testing.T, db *database.DB, name string, leadID *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(), `
		INSERT INTO teams (id, name, lead_id) VALUES ($1, $2, $3)
	`, id, name, leadID)
	require.NoError(t, err)
	return id
}

func createTestLocation(t *testing.T, db *database.DB, name string, lat, lon float64, radius int, active bool, createdAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(), `
		INSERT INTO locations (id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, id, name, lat, lon, radius, active, createdAt)
	require.NoError(t, err)
	return id
}
