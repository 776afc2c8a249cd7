// Package payment holds the two monetary-donation strategies: the
// gateway-redirect flow and the manual bank-transfer-style flow. A
// deployment picks one; both sit behind the same shape of call.
package payment

import (
	"errors"
	"strconv"
	"time"

	"roktodan/internal/locations"
)

// Flow names for the PAYMENT_FLOW config key.
const (
	FlowRedirect = "redirect"
	FlowManual   = "manual"
)

// Contact identifies the donor across both flows.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Initiator starts a payment and hands back the URL the donor's browser
// must be sent to. The eventual outcome arrives out of band, through the
// gateway's own redirect and webhook.
type Initiator interface {
	Initiate(orderID string, amount int, contact Contact) (redirectURL string, err error)
}

// Receipt confirms a manually recorded transfer.
type Receipt struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	Method        string `json:"payment_method"`
	Amount        int    `json:"amount"`
}

// NewOrderID builds a unique gateway order id.
func NewOrderID(now time.Time) string {
	return "DONATION-" + strconv.FormatInt(now.UnixNano(), 10)
}

// Manual is the two-step flow: the donor transfers money out of band to one
// of the published numbers and reports the transaction id.
type Manual struct{}

// Methods lists the accepted transfer channels with their receiving numbers
// and instructions.
func (Manual) Methods() []locations.PaymentMethod {
	return locations.PaymentMethods()
}

// Record validates a reported transfer and builds its receipt. The caller
// persists the donation row.
func (Manual) Record(orderID string, amount int, _ Contact, methodID, transactionID string) (Receipt, error) {
	method, ok := locations.PaymentMethodByID(methodID)
	if !ok {
		return Receipt{}, errors.New("unknown payment method")
	}
	if transactionID == "" {
		return Receipt{}, errors.New("transaction id is required")
	}
	return Receipt{
		OrderID:       orderID,
		TransactionID: transactionID,
		Method:        method.ID,
		Amount:        amount,
	}, nil
}
