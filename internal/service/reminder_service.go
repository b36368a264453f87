package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/notify"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
)

// ReminderOptions carries the throttle tunables plus the fallback values used
// when no stored setting overrides them.
type ReminderOptions struct {
	UpcomingThresholdDays int
	Cooldown              time.Duration
	DispatchDelay         time.Duration
	CountryCode           string
	Currency              string
}

// ReminderService runs the obligation scanner and the dispatch throttle.
//
// The scanner classifies every unpaid or partially paid installment as
// overdue or upcoming relative to "today"; the throttle decides which overdue
// installments may be reminded again (24-hour cooldown) and records dispatch
// history plus a daily sent log that resets at local-date rollover.
//
// The upcoming threshold and the message display settings (currency, phone
// country code) are read through the setting store on each run, so edits via
// the settings endpoint take effect without a restart.
type ReminderService struct {
	installmentRepo *repository.InstallmentRepository
	productRepo     *repository.ProductRepository
	reminderRepo    *repository.ReminderRepository
	settingRepo     *repository.SettingRepository
	dispatcher      notify.Dispatcher
	opts            ReminderOptions
}

// NewReminderService creates a new ReminderService with the provided dependencies.
func NewReminderService(
	installmentRepo *repository.InstallmentRepository,
	productRepo *repository.ProductRepository,
	reminderRepo *repository.ReminderRepository,
	settingRepo *repository.SettingRepository,
	dispatcher notify.Dispatcher,
	opts ReminderOptions,
) *ReminderService {
	return &ReminderService{
		installmentRepo: installmentRepo,
		productRepo:     productRepo,
		reminderRepo:    reminderRepo,
		settingRepo:     settingRepo,
		dispatcher:      dispatcher,
		opts:            opts,
	}
}

// UpcomingDays returns the scanner's upcoming threshold: the stored setting
// when present and parseable, the configured default otherwise.
func (s *ReminderService) UpcomingDays() int {
	raw, err := s.settingRepo.Get(model.SettingReminderUpcomingDays, "")
	if err != nil || raw == "" {
		return s.opts.UpcomingThresholdDays
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return s.opts.UpcomingThresholdDays
	}
	return n
}

// messageBuilder assembles a message builder from the stored display
// settings, falling back to the configured defaults.
func (s *ReminderService) messageBuilder() (*notify.Builder, error) {
	code, err := s.settingRepo.Get(model.SettingCountryCode, s.opts.CountryCode)
	if err != nil {
		return nil, err
	}
	currency, err := s.settingRepo.Get(model.SettingCurrency, s.opts.Currency)
	if err != nil {
		return nil, err
	}
	return notify.NewBuilder(code, currency), nil
}

// Scan walks all customers' unsettled installments and classifies each as
// overdue or upcoming within thresholdDays of now. Paid and on-hold
// installments are never reported.
//
// The output ordering is a fixed contract: all overdue items first, most
// overdue leading, then upcoming items soonest first.
func (s *ReminderService) Scan(now time.Time, thresholdDays int) ([]model.Obligation, error) {
	unsettled, err := s.installmentRepo.GetUnsettled()
	if err != nil {
		return nil, err
	}

	overdue := []model.Obligation{}
	upcoming := []model.Obligation{}

	for _, u := range unsettled {
		days := daysUntil(u.Installment.DueDate, now)
		switch {
		case days < 0:
			overdue = append(overdue, model.Obligation{
				Kind:         model.ObligationOverdue,
				CustomerID:   u.CustomerID,
				CustomerName: u.CustomerName,
				Phone:        u.Phone,
				ProductID:    u.ProductID,
				ProductName:  u.ProductName,
				Installment:  u.Installment,
				DaysOverdue:  -days,
			})
		case days <= thresholdDays:
			upcoming = append(upcoming, model.Obligation{
				Kind:         model.ObligationUpcoming,
				CustomerID:   u.CustomerID,
				CustomerName: u.CustomerName,
				Phone:        u.Phone,
				ProductID:    u.ProductID,
				ProductName:  u.ProductName,
				Installment:  u.Installment,
				DaysUntilDue: days,
			})
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntilDue < upcoming[j].DaysUntilDue
	})

	return append(overdue, upcoming...), nil
}

// DueReminders returns the overdue installments whose reminder may fire now:
// no prior dispatch on record, or the last one is older than the cooldown.
func (s *ReminderService) DueReminders(now time.Time) ([]model.Obligation, error) {
	obligations, err := s.Scan(now, s.UpcomingDays())
	if err != nil {
		return nil, err
	}
	history, err := s.reminderRepo.GetHistory()
	if err != nil {
		return nil, err
	}

	due := []model.Obligation{}
	for _, o := range obligations {
		if o.Kind != model.ObligationOverdue {
			continue
		}
		if last, ok := history[o.Installment.ID]; ok && now.Sub(last) <= s.opts.Cooldown {
			continue
		}
		due = append(due, o)
	}
	return due, nil
}

// Dispatch sends a reminder for every admitted overdue installment, one at a
// time with a fixed delay between sends, then records each dispatch in the
// cooldown history and the daily log. There is no retry and no delivery
// acknowledgment; a repeated run within the cooldown admits nothing.
func (s *ReminderService) Dispatch(ctx context.Context, now time.Time) ([]model.ReminderLogItem, error) {
	today := localDate(now)
	if err := s.reminderRepo.ResetLogIfStale(today); err != nil {
		return nil, err
	}

	due, err := s.DueReminders(now)
	if err != nil {
		return nil, err
	}
	builder, err := s.messageBuilder()
	if err != nil {
		return nil, err
	}

	sent := []model.ReminderLogItem{}
	for i, o := range due {
		if i > 0 && s.opts.DispatchDelay > 0 {
			select {
			case <-time.After(s.opts.DispatchDelay):
			case <-ctx.Done():
				return sent, ctx.Err()
			}
		}

		product, err := s.productRepo.GetByID(o.ProductID)
		if err != nil {
			return sent, err
		}

		msg := builder.Reminder(o.CustomerName, o.ProductName, o.Phone, product, o.Installment)
		if err := s.dispatcher.Send(ctx, msg); err != nil {
			return sent, err
		}

		if err := s.reminderRepo.RecordDispatch(o.Installment.ID, now); err != nil {
			return sent, err
		}
		item := model.ReminderLogItem{
			CustomerID:   o.CustomerID,
			CustomerName: o.CustomerName,
			ProductName:  o.ProductName,
			SentAt:       now,
		}
		if err := s.reminderRepo.AppendLog(today, []model.ReminderLogItem{item}); err != nil {
			return sent, err
		}
		sent = append(sent, item)
	}

	return sent, nil
}

// DailyLog returns today's sent log, clearing any stale entries from a
// previous date first.
func (s *ReminderService) DailyLog(now time.Time) (model.DailyReminderLog, error) {
	today := localDate(now)
	if err := s.reminderRepo.ResetLogIfStale(today); err != nil {
		return model.DailyReminderLog{}, err
	}
	return s.reminderRepo.GetLog(today)
}

// daysUntil returns the whole-day distance from today's midnight to the due
// date's midnight, negative when the due date is in the past. Both midnights
// are taken in now's location, so "one day overdue" means a calendar day
// boundary was crossed, not 24 elapsed hours.
func daysUntil(due, now time.Time) int {
	loc := now.Location()
	d := due.In(loc)
	dueMidnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	nowMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(dueMidnight.Sub(nowMidnight).Hours() / 24))
}

// localDate renders now's calendar date as YYYY-MM-DD.
func localDate(now time.Time) string {
	return now.Format("2006-01-02")
}
