package jobs

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
)

// FlagOverdueRents finds rents past their end time that are not yet finished
// and sends the client a reminder. Rent status is never changed here; only an
// operator can move a rent through its lifecycle.
func (jr *JobRunner) FlagOverdueRents() {
	jr.runWithRecovery("FlagOverdueRents", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.status, r.end_at, c.name, c.email
			FROM rents r
			JOIN clients c ON c.id = r.client_id
			WHERE r.is_active = true
			  AND r.status NOT IN ($1, $2)
			  AND r.end_at < $3
		`

		rows, err := jr.db.QueryContext(ctx, query,
			domain.RentStatusFinished, domain.RentStatusCollectProduct, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to query overdue rents", "error", err)
			return
		}
		defer rows.Close()

		type overdueRent struct {
			ID          int32
			Status      string
			EndAt       time.Time
			ClientName  string
			ClientEmail string
		}

		var overdue []overdueRent
		for rows.Next() {
			var r overdueRent
			if err := rows.Scan(&r.ID, &r.Status, &r.EndAt, &r.ClientName, &r.ClientEmail); err != nil {
				logger.Error("Failed to scan overdue rent", "error", err)
				continue
			}
			overdue = append(overdue, r)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rents", "error", err)
			return
		}

		logger.Info("Flagged overdue rents", "count", len(overdue))

		for _, r := range overdue {
			logger.Debug("Rent is overdue",
				"rent_id", r.ID,
				"status", r.Status,
				"end_at", r.EndAt,
				"client", r.ClientName)

			if r.ClientEmail == "" {
				continue
			}
			if err := jr.email.SendOverdueRentReminder(ctx, r.ClientEmail, r.ClientName, r.ID, r.EndAt); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rent_id", r.ID,
					"error", err)
			}
		}
	})
}
