// Package notify builds outbound WhatsApp messages and hands them to a
// Dispatcher. The message text is a presentation concern; the builders'
// contract is supplying the correct numeric and date inputs.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/format"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// Message is one outbound WhatsApp message, ready to dispatch.
type Message struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	ProductName  string `json:"productName"`
	Phone        string `json:"phone"`
	Body         string `json:"body"`
	URL          string `json:"url"`
}

// Dispatcher delivers a message to the external composer. Delivery is
// fire-and-forget: the composer may or may not result in an actually sent
// message, and that outcome is not observable here.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// LogDispatcher writes each message URL to the application log. It stands in
// for the browser-side composer the original flow opened per message.
type LogDispatcher struct{}

// Send logs the outbound message URL.
func (LogDispatcher) Send(_ context.Context, msg Message) error {
	log.Printf("reminder for %s (%s): %s", msg.CustomerName, msg.ProductName, msg.URL)
	return nil
}

// Builder renders reminder and confirmation messages with the configured
// display currency and phone country code.
type Builder struct {
	countryCode string
	currency    string
}

// NewBuilder creates a message Builder.
func NewBuilder(countryCode, currency string) *Builder {
	return &Builder{countryCode: countryCode, currency: currency}
}

// SanitizePhone strips non-digits and replaces a leading 0 with the country code.
func (b *Builder) SanitizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	sanitized := digits.String()
	if strings.HasPrefix(sanitized, "0") {
		sanitized = b.countryCode + sanitized[1:]
	}
	return sanitized
}

// Reminder builds a payment reminder for one unpaid installment. It carries
// the remaining amount on the installment, its due date, the paid and
// remaining installment counts, and the final installment's due date.
func (b *Builder) Reminder(customerName, productName, phone string, product model.Product, inst model.Installment) Message {
	lastDue := "-"
	if last := product.LastInstallment(); last != nil {
		lastDue = format.Date(last.DueDate)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder that the next installment for %s (total price %s) is due.\n\n"+
			"- Remaining on this installment: %s\n- Due date: %s\n\n"+
			"Installment summary:\n- Fully paid: %d\n- Remaining or partially paid: %d\n- Final installment due: %s\n\n"+
			"Note: the down payment is not counted as an installment.\n\nThank you.",
		customerName, productName, format.Currency(product.TotalPrice, b.currency),
		format.Currency(inst.Remaining(), b.currency), format.Date(inst.DueDate),
		product.PaidInstallmentsCount(), product.UnpaidInstallmentsCount(), lastDue,
	)

	return b.message(customerName, productName, phone, product.CustomerID, body)
}

// PaymentConfirmation builds a receipt message after a payment settles an
// installment, carrying the installment amount, payment date and the
// product's remaining balance.
func (b *Builder) PaymentConfirmation(customerName, productName, phone string, product model.Product, inst model.Installment) Message {
	paidAt := "-"
	if inst.PaidAt != nil {
		paidAt = format.Date(*inst.PaidAt)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour installment payment for %s was received.\n\n"+
			"- Installment amount: %s\n- Payment date: %s\n- Remaining balance: %s\n\nThank you.",
		customerName, productName,
		format.Currency(inst.Amount, b.currency), paidAt,
		format.Currency(product.RemainingAmount(), b.currency),
	)

	return b.message(customerName, productName, phone, product.CustomerID, body)
}

func (b *Builder) message(customerName, productName, phone, customerID, body string) Message {
	sanitized := b.SanitizePhone(phone)
	return Message{
		CustomerID:   customerID,
		CustomerName: customerName,
		ProductName:  productName,
		Phone:        sanitized,
		Body:         body,
		URL:          fmt.Sprintf("https://wa.me/%s?text=%s", sanitized, url.QueryEscape(body)),
	}
}
