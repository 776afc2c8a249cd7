package payment

import (
	"fmt"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans is the redirect flow: a snap transaction is created for the
// donation and the donor is sent to the returned payment page. Settlement
// is confirmed later through the webhook, re-verified against the core API.
type Midtrans struct {
	snap snap.Client
	core coreapi.Client
}

// NewMidtrans builds the gateway client pair for a server key.
func NewMidtrans(serverKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var s snap.Client
	s.New(serverKey, env)
	var c coreapi.Client
	c.New(serverKey, env)

	return &Midtrans{snap: s, core: c}
}

// Initiate creates the snap transaction and returns its redirect URL.
func (m *Midtrans) Initiate(orderID string, amount int, contact Contact) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
		},
	}

	resp, err := m.snap.CreateTransaction(req)
	if resp == nil {
		return "", fmt.Errorf("payment gateway error: %w", err)
	}
	if err != nil {
		// The SDK can hand back a usable response alongside a non-nil
		// error; the redirect URL is still good.
		log.Printf("midtrans returned a response with a non-nil error: %v", err)
	}
	return resp.RedirectURL, nil
}

// Verify re-checks a webhook-notified transaction against the core API.
// Webhook payloads are never trusted on their own.
func (m *Midtrans) Verify(orderID string) (*coreapi.TransactionStatusResponse, error) {
	resp, err := m.core.CheckTransaction(orderID)
	if resp == nil {
		return nil, fmt.Errorf("transaction not found or gateway error: %w", err)
	}
	if err != nil {
		log.Printf("midtrans core API returned a response with a non-nil error: %v", err)
	}
	return resp, nil
}

// Settled reports whether a verified transaction status means the money
// arrived.
func Settled(status string) bool {
	return status == "settlement" || status == "capture"
}
