package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lawnchairsociety/heroforge/internal/derive"
)

// DerivedStore implements derive.Store on the derived_stats table.
type DerivedStore struct {
	d *Database
}

// NewDerivedStore creates a store backed by d
func NewDerivedStore(d *Database) *DerivedStore {
	return &DerivedStore{d: d}
}

// Commit upserts rec unless the stored row already has the same or a newer
// generation. It reports whether the row was written.
func (s *DerivedStore) Commit(ctx context.Context, rec derive.Record) (bool, error) {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return false, fmt.Errorf("failed to encode derived result: %w", err)
	}

	query := s.d.qb.Build(`INSERT INTO derived_stats (character_id, generation, input_hash, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (character_id) DO UPDATE SET
			generation = excluded.generation,
			input_hash = excluded.input_hash,
			payload = excluded.payload,
			updated_at = excluded.updated_at
		WHERE derived_stats.generation < excluded.generation`)

	res, err := s.d.db.ExecContext(ctx, query,
		rec.CharacterID, int64(rec.Generation), rec.Fingerprint, string(payload), rec.CommittedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to commit derived result: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// Load returns the committed record for a character.
func (s *DerivedStore) Load(ctx context.Context, characterID string) (derive.Record, bool, error) {
	var (
		generation int64
		payload    []byte
		updatedAt  time.Time
	)
	rec := derive.Record{CharacterID: characterID}

	err := s.d.db.QueryRowContext(ctx,
		s.d.qb.Build("SELECT generation, input_hash, payload, updated_at FROM derived_stats WHERE character_id = ?"),
		characterID,
	).Scan(&generation, &rec.Fingerprint, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return derive.Record{}, false, nil
	}
	if err != nil {
		return derive.Record{}, false, fmt.Errorf("failed to load derived result: %w", err)
	}

	if err := json.Unmarshal(payload, &rec.Result); err != nil {
		return derive.Record{}, false, fmt.Errorf("failed to decode derived result for %s: %w", characterID, err)
	}
	rec.Generation = uint64(generation)
	rec.CommittedAt = updatedAt
	return rec, true, nil
}

// Delete removes a character's committed record.
func (s *DerivedStore) Delete(ctx context.Context, characterID string) error {
	_, err := s.d.db.ExecContext(ctx, s.d.qb.Build("DELETE FROM derived_stats WHERE character_id = ?"), characterID)
	if err != nil {
		return fmt.Errorf("failed to delete derived result: %w", err)
	}
	return nil
}

// Count returns the number of committed records.
func (s *DerivedStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM derived_stats").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count derived results: %w", err)
	}
	return count, nil
}
