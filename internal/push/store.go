package push

import (
	"database/sql"
	"fmt"

	"github.com/danhyun/motiday/internal/model"
)

// SubscriptionStore persists push subscriptions and the per-day reminder log
// in SQLite.
type SubscriptionStore struct {
	db *sql.DB
}

func NewSubscriptionStore(db *sql.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

const subCols = `id, account_id, endpoint, p256dh_key, auth_key, device_name, created_at`

func scanSubscription(scanner interface{ Scan(...any) error }) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := scanner.Scan(&sub.ID, &sub.AccountID, &sub.Endpoint, &sub.P256dhKey, &sub.AuthKey, &sub.DeviceName, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create registers a subscription. Re-subscribing an existing endpoint
// refreshes its keys instead of duplicating it.
func (s *SubscriptionStore) Create(accountID, endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	_, err := s.db.Exec(
		`INSERT INTO push_subscriptions (account_id, endpoint, p256dh_key, auth_key, device_name)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(endpoint) DO UPDATE SET account_id = excluded.account_id,
			p256dh_key = excluded.p256dh_key, auth_key = excluded.auth_key, device_name = excluded.device_name`,
		accountID, endpoint, p256dh, auth, deviceName,
	)
	if err != nil {
		return nil, fmt.Errorf("create push subscription: %w", err)
	}
	return s.GetByEndpoint(endpoint)
}

func (s *SubscriptionStore) GetByEndpoint(endpoint string) (*model.PushSubscription, error) {
	row := s.db.QueryRow(`SELECT `+subCols+` FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get push subscription: %w", err)
	}
	return sub, nil
}

// ListByAccount returns an account's subscriptions, newest first.
func (s *SubscriptionStore) ListByAccount(accountID string) ([]model.PushSubscription, error) {
	rows, err := s.db.Query(
		`SELECT `+subCols+` FROM push_subscriptions WHERE account_id = ? ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.PushSubscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (s *SubscriptionStore) Delete(id int64, accountID string) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// DeleteByEndpoint prunes a subscription the push service reported gone.
func (s *SubscriptionStore) DeleteByEndpoint(endpoint string) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription by endpoint: %w", err)
	}
	return nil
}

// WasReminded reports whether a reminder already went out for the club on the
// given date (YYYY-MM-DD).
func (s *SubscriptionStore) WasReminded(accountID, clubID, date string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM reminder_log WHERE account_id = ? AND club_id = ? AND sent_on = ?`,
		accountID, clubID, date,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check reminder log: %w", err)
	}
	return count > 0, nil
}

// MarkReminded records that a reminder went out. Marking the same club/date
// twice is a no-op.
func (s *SubscriptionStore) MarkReminded(accountID, clubID, date string) error {
	_, err := s.db.Exec(
		`INSERT INTO reminder_log (account_id, club_id, sent_on) VALUES (?, ?, ?)
		 ON CONFLICT(account_id, club_id, sent_on) DO NOTHING`,
		accountID, clubID, date,
	)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}
