package model

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestling/shared/failure"
	"nestling/shared/model"
	"nestling/shared/money"
	"nestling/shared/timezone"
)

const (
	PaymentTableName  = "payments"
	PaymentEntityName = "payment"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
)

type PaymentState string

const (
	PaymentStatePending   PaymentState = "PENDING"
	PaymentStateCompleted PaymentState = "COMPLETED"
	PaymentStateFailed    PaymentState = "FAILED"
	PaymentStateRefunded  PaymentState = "REFUNDED"
)

// Payment is a single settlement attempt against a booking. A booking can
// accumulate several completed payments; cancellation aggregates them for the
// refund amount.
type Payment struct {
	ID           string          `db:"id"            json:"id"`
	BookingID    string          `db:"booking_id"    json:"booking_id"`
	Amount       decimal.Decimal `db:"amount"        json:"amount"`
	Currency     string          `db:"currency"      json:"currency"`
	Method       PaymentMethod   `db:"method"        json:"method"`
	ProcessorRef string          `db:"processor_ref" json:"processor_ref"`
	Status       PaymentState    `db:"status"        json:"status"`
	ProcessedAt  sql.NullTime    `db:"processed_at"  json:"processed_at"`
	model.Metadata
}

func NewPayment(bookingID string, amount money.Money, method PaymentMethod, processorRef string) (Payment, error) {
	switch method {
	case PaymentMethodCreditCard, PaymentMethodDebitCard:
	default:
		return Payment{}, failure.Validation(fmt.Sprintf("unsupported payment method %q", method))
	}

	now := timezone.Now()

	payment := Payment{
		ID:           uuid.NewString(),
		BookingID:    bookingID,
		Amount:       amount.Amount,
		Currency:     amount.Currency,
		Method:       method,
		ProcessorRef: processorRef,
		Status:       PaymentStatePending,
	}
	payment.CreatedAt = now
	payment.ModifiedAt = now

	return payment, nil
}

// MarkCompleted records the processor acknowledgement.
func (p *Payment) MarkCompleted() {
	p.Status = PaymentStateCompleted
	p.ProcessedAt = sql.NullTime{Time: timezone.Now(), Valid: true}
	p.ModifiedAt = timezone.Now()
}

// AmountMoney returns the payment amount as a Money value.
func (p *Payment) AmountMoney() money.Money {
	return money.Money{Amount: p.Amount, Currency: p.Currency}
}
