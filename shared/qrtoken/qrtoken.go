package qrtoken

import (
	"encoding/base64"
	"fmt"

	"nestling/shared/failure"
	"nestling/shared/money"
)

// minBookingIDLength guards against tokens that decode to garbage shorter
// than any booking id (bookings use UUID strings).
const minBookingIDLength = 10

// Decode extracts the booking id carried by a scanned QR token. The token is
// the base64 encoding of the id itself; anything that does not round-trip is
// rejected.
func Decode(token string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", failure.InvalidToken("invalid QR code")
	}

	bookingID := string(decoded)
	if len(bookingID) <= minBookingIDLength {
		return "", failure.InvalidToken("invalid QR code")
	}

	return bookingID, nil
}

// Encode produces the QR token for a booking id.
func Encode(bookingID string) string {
	return base64.StdEncoding.EncodeToString([]byte(bookingID))
}

// EncodePayment produces the token embedded in a payment QR for outstanding
// session charges.
func EncodePayment(sessionID string, amount money.Money) string {
	data := fmt.Sprintf("payment_%s_%s", sessionID, amount.Amount.StringFixed(2))

	return base64.StdEncoding.EncodeToString([]byte(data))
}
