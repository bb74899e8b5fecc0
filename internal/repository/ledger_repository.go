package repository

import (
	"context"
	"errors"
	"fmt"

	"cofounder-match/internal/database"
	"cofounder-match/internal/database/postgres"
	"cofounder-match/internal/domain/ledger"

	"github.com/google/uuid"
)

var ErrCandidateUnavailable = errors.New("candidate unavailable")

type LikeInput struct {
	LikerID uuid.UUID
	LikedID uuid.UUID
	Kind    ledger.Decision
	// Seed builds the bootstrap message for a match created by this like.
	Seed func(ledger.Match) ledger.Message
}

type LikeOutcome struct {
	Duplicate bool
	Match     *ledger.Match
	// Created is set only for the like that inserted the match row.
	Created       bool
	RaceRecovered bool
	Bootstrap     *ledger.Message
}

// LedgerRepository owns the like and match tables. RecordLike is the only
// write path and runs in a single transaction.
type LedgerRepository interface {
	ListLikedIDs(ctx context.Context, likerID uuid.UUID) ([]uuid.UUID, error)
	RecordLike(ctx context.Context, in LikeInput) (LikeOutcome, error)
}

type PostgresLedgerRepository struct {
	db database.DB
}

func NewPostgresLedgerRepository(db database.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

func (r *PostgresLedgerRepository) ListLikedIDs(ctx context.Context, likerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT liked_id FROM likes WHERE liker_id = $1`, likerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresLedgerRepository) RecordLike(ctx context.Context, in LikeInput) (LikeOutcome, error) {
	if !in.Kind.Persists() {
		return LikeOutcome{}, fmt.Errorf("decision %q is not recorded", in.Kind)
	}

	var out LikeOutcome
	record := func(tx database.Tx) error {
		out = LikeOutcome{}

		var active bool
		err := tx.QueryRow(ctx,
			`SELECT is_active FROM profiles WHERE user_id = $1 FOR SHARE`,
			in.LikedID,
		).Scan(&active)
		if err != nil {
			if errors.Is(err, database.ErrNoRows) {
				return ErrCandidateUnavailable
			}
			return err
		}
		if !active {
			return ErrCandidateUnavailable
		}

		inserted, err := tx.Exec(ctx,
			`INSERT INTO likes (id, liker_id, liked_id, kind) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (liker_id, liked_id) DO NOTHING`,
			uuid.New(), in.LikerID, in.LikedID, string(in.Kind),
		)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrProfileNotFound
			}
			return err
		}
		out.Duplicate = inserted == 0

		// Serializes reciprocal likes of the same pair.
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			ledger.PairKey(in.LikerID, in.LikedID),
		); err != nil {
			return err
		}

		var reciprocal bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM likes WHERE liker_id = $1 AND liked_id = $2)`,
			in.LikedID, in.LikerID,
		).Scan(&reciprocal); err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		m, created, err := insertOrGetMatch(ctx, tx, in.LikerID, in.LikedID)
		if err != nil {
			return err
		}
		out.Match = &m
		out.Created = created
		out.RaceRecovered = !created && !out.Duplicate

		if created && in.Seed != nil {
			msg := in.Seed(m)
			if _, err := tx.Exec(ctx,
				`INSERT INTO messages (id, match_id, sender_id, kind, content, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT DO NOTHING`,
				msg.ID, msg.MatchID, msg.SenderID, msg.Kind, msg.Content, msg.CreatedAt,
			); err != nil {
				return err
			}
			out.Bootstrap = &msg
		}
		return nil
	}

	// A deadlock or serialization failure aborts the whole transaction; one
	// fresh attempt is enough for two likes racing on the same pair.
	err := database.WithTx(ctx, r.db, record)
	if err != nil && postgres.IsRetryable(err) {
		err = database.WithTx(ctx, r.db, record)
	}
	if err != nil {
		return LikeOutcome{}, err
	}
	return out, nil
}

func insertOrGetMatch(ctx context.Context, tx database.Tx, x, y uuid.UUID) (ledger.Match, bool, error) {
	a, b := ledger.CanonicalPair(x, y)
	m := ledger.Match{UserAID: a, UserBID: b, Status: ledger.MatchStatusActive}

	err := tx.QueryRow(ctx,
		`INSERT INTO matches (id, user_a_id, user_b_id, status) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_a_id, user_b_id) DO NOTHING
		 RETURNING id, created_at`,
		uuid.New(), a, b, string(ledger.MatchStatusActive),
	).Scan(&m.ID, &m.CreatedAt)
	if err == nil {
		return m, true, nil
	}
	if !errors.Is(err, database.ErrNoRows) {
		return ledger.Match{}, false, err
	}

	var status string
	if err := tx.QueryRow(ctx,
		`SELECT id, status, created_at FROM matches WHERE user_a_id = $1 AND user_b_id = $2`,
		a, b,
	).Scan(&m.ID, &status, &m.CreatedAt); err != nil {
		return ledger.Match{}, false, err
	}
	m.Status = ledger.MatchStatus(status)
	return m, false, nil
}
