package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ReminderRepository provides data access for the dispatch throttle state:
// the per-installment last-sent timestamps and the daily sent log.
type ReminderRepository struct {
	db *sql.DB
}

// NewReminderRepository creates a new ReminderRepository with the provided database connection.
func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// GetHistory returns the last-dispatched timestamp per installment ID.
func (r *ReminderRepository) GetHistory() (map[string]time.Time, error) {
	rows, err := r.db.Query(`SELECT installment_id, last_sent_at FROM reminder_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder_history table: %w", err)
	}
	defer rows.Close()

	history := map[string]time.Time{}
	for rows.Next() {
		var installmentID, lastSentAt string
		if err := rows.Scan(&installmentID, &lastSentAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder_history results: %w", err)
		}
		t, err := scanTime("reminder_history.last_sent_at", lastSentAt)
		if err != nil {
			return nil, err
		}
		history[installmentID] = t
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder_history table: %w", err)
	}

	return history, nil
}

// RecordDispatch stores now as the installment's last-dispatched time.
func (r *ReminderRepository) RecordDispatch(installmentID string, now time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO reminder_history (installment_id, last_sent_at)
		VALUES (?, ?)
		ON CONFLICT(installment_id) DO UPDATE SET last_sent_at = excluded.last_sent_at
	`, installmentID, formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to record reminder dispatch: %w", err)
	}
	return nil
}

// ResetLogIfStale clears log entries whose date differs from today, so the
// log always holds a single calendar date's reminders.
func (r *ReminderRepository) ResetLogIfStale(today string) error {
	_, err := r.db.Exec(`DELETE FROM daily_reminder_log WHERE date != ?`, today)
	if err != nil {
		return fmt.Errorf("failed to reset daily reminder log: %w", err)
	}
	return nil
}

// AppendLog adds dispatched reminders to the given date's log.
func (r *ReminderRepository) AppendLog(date string, items []model.ReminderLogItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.Exec(`
			INSERT INTO daily_reminder_log (id, date, customer_id, customer_name, product_name, sent_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), date, item.CustomerID, item.CustomerName, item.ProductName, formatTime(item.SentAt))
		if err != nil {
			return fmt.Errorf("failed to append reminder log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reminder log entries: %w", err)
	}
	return nil
}

// GetLog returns the reminders logged for the given date.
func (r *ReminderRepository) GetLog(date string) (model.DailyReminderLog, error) {
	rows, err := r.db.Query(`
		SELECT customer_id, customer_name, product_name, sent_at
		FROM daily_reminder_log
		WHERE date = ?
		ORDER BY sent_at
	`, date)
	if err != nil {
		return model.DailyReminderLog{}, fmt.Errorf("failed to query daily_reminder_log table: %w", err)
	}
	defer rows.Close()

	log := model.DailyReminderLog{Date: date, Reminders: []model.ReminderLogItem{}}
	for rows.Next() {
		var item model.ReminderLogItem
		var sentAt string

		if err := rows.Scan(&item.CustomerID, &item.CustomerName, &item.ProductName, &sentAt); err != nil {
			return model.DailyReminderLog{}, fmt.Errorf("failed to scan daily_reminder_log results: %w", err)
		}
		if item.SentAt, err = scanTime("daily_reminder_log.sent_at", sentAt); err != nil {
			return model.DailyReminderLog{}, err
		}
		log.Reminders = append(log.Reminders, item)
	}
	if err = rows.Err(); err != nil {
		return model.DailyReminderLog{}, fmt.Errorf("error iterating daily_reminder_log table: %w", err)
	}

	return log, nil
}
