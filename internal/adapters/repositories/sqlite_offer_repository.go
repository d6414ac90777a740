package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/platform/obs"
)

// SQLite-backed implementation of the OfferRepository port.
type SqliteOfferRepository struct{ DB *sql.DB }

func NewSqliteOfferRepository(db *sql.DB) *SqliteOfferRepository {
	return &SqliteOfferRepository{DB: db}
}

func (s *SqliteOfferRepository) SaveOffer(ctx context.Context, offer *domain.Offer) (err error) {
	defer obs.Time(ctx, "offers.Save")(&err)

	if s.DB == nil {
		return errors.New("offer repository: DB is nil")
	}
	if offer == nil {
		return errors.New("save offer: offer is nil")
	}

	payload, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("save offer: marshal offer %s: %w", offer.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO offers (offer_id, route_id, status, payload, created_at)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		offer.ID.String(), offer.RouteID.String(), string(offer.Status),
		string(payload), offer.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save offer: insert offer %s: %w", offer.ID, err)
	}

	return nil
}

// ListOffers returns stored offers, newest first, for the review endpoint.
func (s *SqliteOfferRepository) ListOffers(ctx context.Context) (_ []*domain.Offer, err error) {
	defer obs.Time(ctx, "offers.List")(&err)

	if s.DB == nil {
		return nil, errors.New("offer repository: DB is nil")
	}

	query := `SELECT payload FROM offers ORDER BY created_at DESC;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list offers: query offers table: %w", err)
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0, 16)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list offers: scan row: %w", err)
		}

		var offer domain.Offer
		if err := json.Unmarshal([]byte(payload), &offer); err != nil {
			return nil, fmt.Errorf("list offers: unmarshal offer: %w", err)
		}
		offers = append(offers, &offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offers: row iteration: %w", err)
	}

	return offers, nil
}
