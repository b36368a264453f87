package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/notify"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/testutil"
	"github.com/shopspring/decimal"
)

// recordingDispatcher captures every message handed to it, standing in for
// the WhatsApp composer.
type recordingDispatcher struct {
	sent []notify.Message
}

func (d *recordingDispatcher) Send(_ context.Context, msg notify.Message) error {
	d.sent = append(d.sent, msg)
	return nil
}

// TestReminderService_Scan tests the obligation scanner's classification.
//
// WHY: Whether an installment counts as overdue or upcoming is decided by
// calendar-day distance, not elapsed hours, and the threshold boundary is
// inclusive. Getting the boundary wrong silently drops reminders.
func TestReminderService_Scan(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(100000)

	t.Run("classifies by day distance with inclusive threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReminderService(t, db, &recordingDispatcher{}, 3, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		// Due yesterday, today, at the threshold, and one day past it.
		testutil.NewProduct(customer.ID).WithName("Overdue").
			WithSchedule(amount, 1, now.AddDate(0, 0, -1)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("Due today").
			WithSchedule(amount, 1, now).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("At threshold").
			WithSchedule(amount, 1, now.AddDate(0, 0, 3)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("Past threshold").
			WithSchedule(amount, 1, now.AddDate(0, 0, 4)).Build(t, db)

		obligations, err := svc.Scan(now, 3)
		if err != nil {
			t.Fatalf("Scan() returned unexpected error: %v", err)
		}

		if len(obligations) != 3 {
			t.Fatalf("Expected 3 obligations, got %d", len(obligations))
		}

		if obligations[0].Kind != model.ObligationOverdue || obligations[0].ProductName != "Overdue" {
			t.Errorf("Expected the overdue item first, got %s %q", obligations[0].Kind, obligations[0].ProductName)
		}
		if obligations[0].DaysOverdue != 1 {
			t.Errorf("Expected 1 day overdue, got %d", obligations[0].DaysOverdue)
		}
		if obligations[1].ProductName != "Due today" || obligations[1].DaysUntilDue != 0 {
			t.Errorf("Expected due-today item second, got %q (%d days)", obligations[1].ProductName, obligations[1].DaysUntilDue)
		}
		if obligations[2].ProductName != "At threshold" || obligations[2].DaysUntilDue != 3 {
			t.Errorf("Expected at-threshold item third, got %q (%d days)", obligations[2].ProductName, obligations[2].DaysUntilDue)
		}
	})

	t.Run("orders overdue by most overdue, upcoming by soonest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReminderService(t, db, &recordingDispatcher{}, 7, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).WithName("A").
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("B").
			WithSchedule(amount, 1, now.AddDate(0, 0, -10)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("C").
			WithSchedule(amount, 1, now.AddDate(0, 0, 5)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("D").
			WithSchedule(amount, 1, now.AddDate(0, 0, 1)).Build(t, db)

		obligations, err := svc.Scan(now, 7)
		if err != nil {
			t.Fatalf("Scan() returned unexpected error: %v", err)
		}

		var names []string
		for _, o := range obligations {
			names = append(names, o.ProductName)
		}
		expected := []string{"B", "A", "D", "C"}
		if len(names) != len(expected) {
			t.Fatalf("Expected %d obligations, got %d", len(expected), len(names))
		}
		for i := range expected {
			if names[i] != expected[i] {
				t.Errorf("Position %d: expected %q, got %q", i, expected[i], names[i])
			}
		}
	})

	t.Run("paid and on-hold installments are never reported", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReminderService(t, db, &recordingDispatcher{}, 3, 24*time.Hour)
		instRepo := repository.NewInstallmentRepository(db)

		customer := testutil.NewCustomer().Build(t, db)
		product := testutil.NewProduct(customer.ID).
			WithSchedule(amount, 3, now.AddDate(0, 0, -5)).Build(t, db)

		paid := product.Installments[0]
		paid.Status = model.StatusPaid
		paid.AmountPaid = paid.Amount
		if err := instRepo.Update(paid); err != nil {
			t.Fatalf("Failed to mark installment paid: %v", err)
		}

		held := product.Installments[1]
		held.Status = model.StatusOnHold
		if err := instRepo.Update(held); err != nil {
			t.Fatalf("Failed to put installment on hold: %v", err)
		}

		obligations, err := svc.Scan(now, 3)
		if err != nil {
			t.Fatalf("Scan() returned unexpected error: %v", err)
		}

		if len(obligations) != 1 {
			t.Fatalf("Expected only the unpaid installment, got %d obligations", len(obligations))
		}
		if obligations[0].Installment.ID != product.Installments[2].ID {
			t.Errorf("Expected the remaining unpaid installment to be reported")
		}
	})

	t.Run("partially paid installments are still reported", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		instSvc := testutil.NewTestInstallmentService(t, db)
		svc := testutil.NewTestReminderService(t, db, &recordingDispatcher{}, 3, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		product := testutil.NewProduct(customer.ID).
			WithSchedule(amount, 1, now.AddDate(0, 0, -1)).Build(t, db)

		if _, err := instSvc.ApplyPayment(product.Installments[0].ID, decimal.NewFromInt(40000), now); err != nil {
			t.Fatalf("Payment returned unexpected error: %v", err)
		}

		obligations, err := svc.Scan(now, 3)
		if err != nil {
			t.Fatalf("Scan() returned unexpected error: %v", err)
		}
		if len(obligations) != 1 {
			t.Fatalf("Expected the partially paid installment to be reported, got %d", len(obligations))
		}
	})
}

// TestReminderService_Dispatch tests the reminder throttle and daily log.
//
// WHY: Dispatch must send at most one reminder per installment per cooldown
// window, target overdue installments only, and keep a sent log that resets
// when the calendar date changes.
func TestReminderService_Dispatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(100000)

	t.Run("sends reminders for overdue installments only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dispatcher := &recordingDispatcher{}
		svc := testutil.NewTestReminderService(t, db, dispatcher, 3, 24*time.Hour)

		customer := testutil.NewCustomer().WithPhone("07701234567").Build(t, db)
		testutil.NewProduct(customer.ID).WithName("Overdue").
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)
		testutil.NewProduct(customer.ID).WithName("Upcoming").
			WithSchedule(amount, 1, now.AddDate(0, 0, 2)).Build(t, db)

		sent, err := svc.Dispatch(context.Background(), now)
		if err != nil {
			t.Fatalf("Dispatch() returned unexpected error: %v", err)
		}

		if len(sent) != 1 {
			t.Fatalf("Expected 1 reminder sent, got %d", len(sent))
		}
		if sent[0].ProductName != "Overdue" {
			t.Errorf("Expected reminder for the overdue product, got %q", sent[0].ProductName)
		}
		if len(dispatcher.sent) != 1 {
			t.Fatalf("Expected 1 dispatched message, got %d", len(dispatcher.sent))
		}
		if dispatcher.sent[0].Phone != "9647701234567" {
			t.Errorf("Expected sanitized phone 9647701234567, got %q", dispatcher.sent[0].Phone)
		}
	})

	t.Run("cooldown suppresses a repeat dispatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dispatcher := &recordingDispatcher{}
		svc := testutil.NewTestReminderService(t, db, dispatcher, 3, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)

		if _, err := svc.Dispatch(context.Background(), now); err != nil {
			t.Fatalf("First dispatch returned unexpected error: %v", err)
		}

		// An hour later the cooldown still holds.
		sent, err := svc.Dispatch(context.Background(), now.Add(time.Hour))
		if err != nil {
			t.Fatalf("Second dispatch returned unexpected error: %v", err)
		}
		if len(sent) != 0 {
			t.Errorf("Expected no reminders within the cooldown, got %d", len(sent))
		}

		// Past the cooldown the reminder fires again.
		sent, err = svc.Dispatch(context.Background(), now.Add(25*time.Hour))
		if err != nil {
			t.Fatalf("Third dispatch returned unexpected error: %v", err)
		}
		if len(sent) != 1 {
			t.Errorf("Expected the reminder to fire after the cooldown, got %d", len(sent))
		}
		if len(dispatcher.sent) != 2 {
			t.Errorf("Expected 2 dispatched messages in total, got %d", len(dispatcher.sent))
		}
	})

	t.Run("due reminders lists admitted installments without sending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dispatcher := &recordingDispatcher{}
		svc := testutil.NewTestReminderService(t, db, dispatcher, 3, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)

		due, err := svc.DueReminders(now)
		if err != nil {
			t.Fatalf("DueReminders() returned unexpected error: %v", err)
		}
		if len(due) != 1 {
			t.Errorf("Expected 1 due reminder, got %d", len(due))
		}
		if len(dispatcher.sent) != 0 {
			t.Errorf("Expected no messages dispatched, got %d", len(dispatcher.sent))
		}
	})

	t.Run("stored settings override the configured defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dispatcher := &recordingDispatcher{}
		svc := testutil.NewTestReminderService(t, db, dispatcher, 3, 24*time.Hour)

		settings := testutil.NewTestSystemService(t, db)
		if err := settings.UpdateSettings(map[string]string{
			model.SettingReminderUpcomingDays: "7",
			model.SettingCountryCode:          "1",
			model.SettingCurrency:             "USD",
		}); err != nil {
			t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
		}

		if got := svc.UpcomingDays(); got != 7 {
			t.Errorf("Expected stored threshold 7, got %d", got)
		}

		customer := testutil.NewCustomer().WithPhone("07701234567").Build(t, db)
		testutil.NewProduct(customer.ID).
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)

		if _, err := svc.Dispatch(context.Background(), now); err != nil {
			t.Fatalf("Dispatch() returned unexpected error: %v", err)
		}
		if len(dispatcher.sent) != 1 {
			t.Fatalf("Expected 1 dispatched message, got %d", len(dispatcher.sent))
		}
		if dispatcher.sent[0].Phone != "17701234567" {
			t.Errorf("Expected the stored country code applied, got %q", dispatcher.sent[0].Phone)
		}
		if !strings.Contains(dispatcher.sent[0].Body, "USD") {
			t.Errorf("Expected the stored currency in the body:\n%s", dispatcher.sent[0].Body)
		}
	})

	t.Run("unparseable stored threshold falls back to the default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReminderService(t, db, &recordingDispatcher{}, 3, 24*time.Hour)

		settings := testutil.NewTestSystemService(t, db)
		if err := settings.UpdateSettings(map[string]string{
			model.SettingReminderUpcomingDays: "soon",
		}); err != nil {
			t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
		}

		if got := svc.UpcomingDays(); got != 3 {
			t.Errorf("Expected the configured default 3, got %d", got)
		}
	})

	t.Run("daily log resets when the date rolls over", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		dispatcher := &recordingDispatcher{}
		svc := testutil.NewTestReminderService(t, db, dispatcher, 3, 24*time.Hour)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).
			WithSchedule(amount, 1, now.AddDate(0, 0, -2)).Build(t, db)

		if _, err := svc.Dispatch(context.Background(), now); err != nil {
			t.Fatalf("Dispatch() returned unexpected error: %v", err)
		}

		today, err := svc.DailyLog(now)
		if err != nil {
			t.Fatalf("DailyLog() returned unexpected error: %v", err)
		}
		if today.Date != "2026-03-10" {
			t.Errorf("Expected log date 2026-03-10, got %q", today.Date)
		}
		if len(today.Reminders) != 1 {
			t.Errorf("Expected 1 logged reminder, got %d", len(today.Reminders))
		}

		tomorrow, err := svc.DailyLog(now.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("DailyLog() returned unexpected error: %v", err)
		}
		if tomorrow.Date != "2026-03-11" {
			t.Errorf("Expected log date 2026-03-11, got %q", tomorrow.Date)
		}
		if len(tomorrow.Reminders) != 0 {
			t.Errorf("Expected an empty log after rollover, got %d entries", len(tomorrow.Reminders))
		}
	})
}
