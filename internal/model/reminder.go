package model

import "time"

// ObligationKind classifies an unpaid installment relative to "today".
type ObligationKind string

const (
	ObligationOverdue  ObligationKind = "overdue"
	ObligationUpcoming ObligationKind = "upcoming"
)

/// Obligation is one entry in the obligation scanner's output: an unpaid or
// partially paid installment that is either past due or due within the
// upcoming threshold. Exactly one of DaysOverdue/DaysUntilDue is meaningful,
// selected by Kind.
type Obligation struct {
	Kind         ObligationKind `json:"kind"`
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName"`
	Phone        string         `json:"phone"`
	ProductID    string         `json:"productId"`
	ProductName  string         `json:"productName"`
	Installment  Installment    `json:"installment"`
	DaysOverdue  int            `json:"daysOverdue,omitempty"`
	DaysUntilDue int            `json:"daysUntilDue,omitempty"`
}

// ReminderLogItem is one dispatched reminder recorded in the daily log.
type ReminderLogItem struct {
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	SentAt       time.Time `json:"sentAt"`
}

// DailyReminderLog groups the reminders sent on one calendar date. The log is
// cleared and re-seeded whenever the stored date differs from today.
type DailyReminderLog struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	Reminders []ReminderLogItem `json:"reminders"`
}
