package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"nestling/internal/domains/booking/model"
)

type CustomerInfoRequest struct {
	Name             string `json:"name"              validate:"required,max=100"`
	Email            string `json:"email"             validate:"required,email,max=100"`
	Phone            string `json:"phone"             validate:"required,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
}

type ChildInfoRequest struct {
	Name                string `json:"name"                 validate:"required,max=100"`
	Age                 int    `json:"age"                  validate:"gte=0,lte=17"`
	SpecialNeeds        string `json:"special_needs"        validate:"omitempty,max=500"`
	Allergies           string `json:"allergies"            validate:"omitempty,max=500"`
	PickupAuthorization string `json:"pickup_authorization" validate:"omitempty,max=200"`
	SpecialInstructions string `json:"special_instructions" validate:"omitempty,max=500"`
}

type CreateBookingRequest struct {
	FranchiseID   string              `json:"franchise_id"   validate:"required"`
	StartDatetime string              `json:"start_datetime" validate:"required"`
	EndDatetime   string              `json:"end_datetime"   validate:"required"`
	CustomerInfo  CustomerInfoRequest `json:"customer_info"  validate:"required"`
	ChildInfo     ChildInfoRequest    `json:"child_info"     validate:"required"`
}

// Window parses the requested care window. Timestamps are RFC 3339.
func (c *CreateBookingRequest) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.StartDatetime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := time.Parse(time.RFC3339, c.EndDatetime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

func (c *CreateBookingRequest) Customer() (model.CustomerInfo, error) {
	return model.NewCustomerInfo(
		c.CustomerInfo.Name,
		c.CustomerInfo.Email,
		c.CustomerInfo.Phone,
		c.CustomerInfo.EmergencyContact,
	)
}

func (c *CreateBookingRequest) Child() (model.ChildInfo, error) {
	return model.NewChildInfo(
		c.ChildInfo.Name,
		c.ChildInfo.Age,
		c.ChildInfo.SpecialNeeds,
		c.ChildInfo.Allergies,
		c.ChildInfo.PickupAuthorization,
		c.ChildInfo.SpecialInstructions,
	)
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CustomerInfoResponse struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
}

type ChildInfoResponse struct {
	Name                string `json:"name"`
	Age                 int    `json:"age"`
	SpecialNeeds        string `json:"special_needs"`
	Allergies           string `json:"allergies"`
	PickupAuthorization string `json:"pickup_authorization"`
	SpecialInstructions string `json:"special_instructions"`
}

type BookingResponse struct {
	ID              string               `json:"id"`
	ReferenceNumber string               `json:"reference_number"`
	FranchiseID     string               `json:"franchise_id"`
	StartDatetime   string               `json:"start_datetime"`
	EndDatetime     string               `json:"end_datetime"`
	CustomerInfo    CustomerInfoResponse `json:"customer_info"`
	ChildInfo       ChildInfoResponse    `json:"child_info"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Currency        string               `json:"currency"`
	BookingStatus   string               `json:"booking_status"`
	PaymentStatus   string               `json:"payment_status"`
	QRToken         string               `json:"qr_token"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.ReferenceNumber = booking.ReferenceNumber
	r.FranchiseID = booking.FranchiseID
	r.StartDatetime = booking.StartDatetime.Format(time.RFC3339)
	r.EndDatetime = booking.EndDatetime.Format(time.RFC3339)
	r.CustomerInfo = CustomerInfoResponse(booking.CustomerInfo)
	r.ChildInfo = ChildInfoResponse(booking.ChildInfo)
	r.TotalAmount = booking.TotalAmount
	r.Currency = booking.Currency
	r.BookingStatus = string(booking.BookingStatus)
	r.PaymentStatus = string(booking.PaymentStatus)
	r.QRToken = booking.QRToken
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking) {
	r.Bookings = make([]BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		res := BookingResponse{}
		res.FromModel(booking)
		r.Bookings = append(r.Bookings, res)
	}

	r.Total = len(bookings)
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	BookingID    string          `json:"booking_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Method       string          `json:"method"`
	ProcessorRef string          `json:"processor_ref"`
	Status       string          `json:"status"`
	ProcessedAt  string          `json:"processed_at,omitempty"`
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.Amount = payment.Amount
	r.Currency = payment.Currency
	r.Method = string(payment.Method)
	r.ProcessorRef = payment.ProcessorRef
	r.Status = string(payment.Status)

	if payment.ProcessedAt.Valid {
		r.ProcessedAt = payment.ProcessedAt.Time.Format(time.RFC3339)
	}
}

type ProcessPaymentResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment PaymentResponse `json:"payment"`
}

type CancelBookingResponse struct {
	Booking      BookingResponse `json:"booking"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Currency     string          `json:"currency"`
}
