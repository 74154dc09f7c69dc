// internal/billing/subscription.go
//
// Subscription-status reads.
//
// Context
// -------
// Billing itself (plans, invoices, payment webhooks) lives in a
// separate service; this package only answers the one question the
// guard chain asks: what is the current subscription status of tenant
// N.  The value is read straight from the tenant row, which the
// billing service keeps in sync.
package billing

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Service reads subscription state from the control-plane database.
type Service struct {
	db *sqlx.DB
}

// NewService wraps db.
func NewService(db *sqlx.DB) *Service { return &Service{db: db} }

// SubscriptionStatus returns the current status string for tenantID.
// sql.ErrNoRows propagates when the tenant does not exist.
func (s *Service) SubscriptionStatus(ctx context.Context, tenantID int64) (string, error) {
	const q = `
        SELECT subscription_status
        FROM   tenant
        WHERE  id = ?
        LIMIT  1`
	var status string
	if err := s.db.GetContext(ctx, &status, q, tenantID); err != nil {
		return "", err
	}
	return status, nil
}
