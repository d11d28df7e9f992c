//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const (
	SeedPropertyName = "Seaside Cottage"
	SeedGuestEmail   = "jamie@example.com"
)

func CreateTestProperty(t *testing.T, db DBLike, name string, maxGuests int) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO properties (id, name, max_guests, currency, is_active) VALUES ($1, $2, $3, 'USD', true)",
		propertyID, name, maxGuests)
	require.NoError(t, err)

	return propertyID
}

func CreateTestGuest(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO guests (id, name, email, is_blacklisted) VALUES ($1, $2, $3, false) ON CONFLICT (email) DO NOTHING",
		guestID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM guests WHERE email = $1", email).Scan(&guestID)
	}

	return guestID
}

// nightlyRate is in currency units ("100.00" per night, not cents).
func CreateBaseRate(t *testing.T, db DBLike, propertyID uuid.UUID, nightlyRate float64) uuid.UUID {
	t.Helper()

	ruleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO pricing_rules (id, property_id, rule_type, priority, adjustment_type, adjustment_value, is_active) VALUES ($1, $2, 'base', 0, 'fixed', $3, true)",
		ruleID, propertyID, nightlyRate)
	require.NoError(t, err)

	return ruleID
}

func CreateWeekendSurcharge(t *testing.T, db DBLike, propertyID uuid.UUID, percent float64) uuid.UUID {
	t.Helper()

	ruleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO pricing_rules (id, property_id, rule_type, priority, adjustment_type, adjustment_value, is_active) VALUES ($1, $2, 'weekend', 0, 'percentage', $3, true)",
		ruleID, propertyID, percent)
	require.NoError(t, err)

	return ruleID
}

// covers min_stay / max_stay / max_guests / advance_booking rows.
func CreateRestriction(t *testing.T, db DBLike, propertyID uuid.UUID, kind string, intValue int) uuid.UUID {
	t.Helper()

	restrictionID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO restrictions (id, property_id, restriction_type, int_value, is_active) VALUES ($1, $2, $3, $4, true)",
		restrictionID, propertyID, kind, intValue)
	require.NoError(t, err)

	return restrictionID
}

func FindPropertyID(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var propertyID uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM properties WHERE name = $1 LIMIT 1", name).Scan(&propertyID)
	require.NoError(t, err)

	return propertyID
}

func FindGuestID(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	var guestID uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM guests WHERE email = $1", email).Scan(&guestID)
	require.NoError(t, err)

	return guestID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	var propertyID uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO properties (id, name, max_guests, currency, is_active)
		VALUES (gen_random_uuid(), $1, 6, 'USD', true)
		RETURNING id;
	`, SeedPropertyName).Scan(&propertyID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO guests (id, name, email, is_blacklisted)
		VALUES (gen_random_uuid(), 'Jamie Guest', $1, false)
		ON CONFLICT (email) DO NOTHING;
	`, SeedGuestEmail)
	if err != nil {
		return err
	}

	// Nightly base rate so the seeded property can be booked right away.
	_, err = pool.Exec(ctx, `
		INSERT INTO pricing_rules (id, property_id, rule_type, priority, adjustment_type, adjustment_value, is_active)
		VALUES (gen_random_uuid(), $1, 'base', 0, 'fixed', 100.00, true);
	`, propertyID)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
