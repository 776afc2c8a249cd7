package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go/coreapi"

	"roktodan/internal/backend"
	"roktodan/internal/format"
	"roktodan/internal/models"
	"roktodan/internal/payment"
	"roktodan/internal/validate"
	"roktodan/internal/ws"
)

// recentDonationsLimit caps the public recent-donors list.
const recentDonationsLimit = 5

// donationTables is the slice of the service-scoped backend client the
// money-donation flows need. Donation rows are written with the service
// client: donors are often anonymous visitors without a session.
type donationTables interface {
	InsertDonation(models.MonetaryDonation) error
	DonationByOrderID(orderID string) (*models.MonetaryDonation, error)
	SettleDonation(orderID, transactionID string) error
	RecentDonations(limit int) ([]models.MonetaryDonation, error)
}

// DonationHandler serves the donate-money page in whichever flow the
// deployment picked, plus the public donation history.
type DonationHandler struct {
	Tables  donationTables
	Gateway *payment.Midtrans
	Manual  payment.Manual
	Hub     *ws.Hub
	Flow    string
}

func NewDonationHandler(tables donationTables, gateway *payment.Midtrans, hub *ws.Hub, flow string) *DonationHandler {
	return &DonationHandler{Tables: tables, Gateway: gateway, Hub: hub, Flow: flow}
}

// Initiate starts the redirect flow: the donation is stored pending and the
// donor's browser is sent to the gateway's payment page.
func (h *DonationHandler) Initiate(c *gin.Context) {
	if h.Flow != payment.FlowRedirect || h.Gateway == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Online payment is not enabled."})
		return
	}

	var form validate.MoneyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	errs := validate.Money(form)
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"error": firstError(errs), "errors": errs})
		return
	}

	orderID := payment.NewOrderID(time.Now())
	donation := models.MonetaryDonation{
		Name:          form.Name,
		Email:         optional(form.Email),
		Phone:         form.Phone,
		Amount:        form.Amount,
		PaymentMethod: "online",
		OrderID:       orderID,
		Status:        models.DonationPending,
	}
	if err := h.Tables.InsertDonation(donation); err != nil {
		log.Println("failed to create pending donation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}

	url, err := h.Gateway.Initiate(orderID, form.Amount, payment.Contact{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
	})
	if err != nil {
		log.Println("failed to initiate payment:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initiate payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "order_id": orderID})
}

// Webhook receives the gateway's settlement notification, re-verifies the
// transaction, settles the donation idempotently, and announces it on the
// live ticker.
func (h *DonationHandler) Webhook(c *gin.Context) {
	if h.Gateway == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Online payment is not enabled."})
		return
	}

	var notification coreapi.TransactionStatusResponse
	if err := c.ShouldBindJSON(&notification); err != nil {
		log.Println("failed to bind payment notification:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification format"})
		return
	}

	verified, err := h.Gateway.Verify(notification.OrderID)
	if err != nil {
		log.Println("failed to verify transaction:", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or API error"})
		return
	}

	if !payment.Settled(verified.TransactionStatus) {
		log.Println("received non-settled transaction status:", verified.TransactionStatus)
		c.JSON(http.StatusOK, gin.H{"status": "ok (not settled)"})
		return
	}

	donation, err := h.Tables.DonationByOrderID(verified.OrderID)
	if err != nil {
		log.Println("failed to find donation by order_id:", verified.OrderID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}
	if donation.Status == models.DonationSettled {
		log.Println("duplicate webhook, already settled:", verified.TransactionID)
		c.JSON(http.StatusOK, gin.H{"status": "ok (duplicate)"})
		return
	}

	if err := h.Tables.SettleDonation(verified.OrderID, verified.TransactionID); err != nil {
		log.Println("failed to settle donation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	log.Printf("settled donation %s (%d BDT)", verified.TransactionID, donation.Amount)

	if h.Hub != nil {
		h.Hub.Broadcast <- ws.DonationAlert{
			DonorName: donation.Name,
			Contact:   format.DisplayContact(donation.Phone, donation.Email),
			Amount:    donation.Amount,
			Method:    donation.PaymentMethod,
			CreatedAt: format.Date(time.Now()),
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Methods lists the manual transfer channels with their receiving numbers.
func (h *DonationHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.Manual.Methods()})
}

type manualDonationRequest struct {
	validate.MoneyForm
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

// RecordManual records a donation the donor transferred out of band,
// keyed by the transaction id they report. No gateway call is made.
func (h *DonationHandler) RecordManual(c *gin.Context) {
	if h.Flow != payment.FlowManual {
		c.JSON(http.StatusConflict, gin.H{"error": "Manual transfers are not enabled."})
		return
	}

	var req manualDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	errs := validate.Money(req.MoneyForm)
	if req.PaymentMethod == "" {
		errs.Add("payment_method", "Please select a payment method")
	}
	if req.TransactionID == "" {
		errs.Add("transaction_id", "Please enter the transaction ID of your transfer")
	}
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	orderID := payment.NewOrderID(time.Now())
	receipt, err := h.Manual.Record(orderID, req.Amount, payment.Contact{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}, req.PaymentMethod, req.TransactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation := models.MonetaryDonation{
		Name:          req.Name,
		Email:         optional(req.Email),
		Phone:         req.Phone,
		Amount:        req.Amount,
		PaymentMethod: receipt.Method,
		TransactionID: receipt.TransactionID,
		OrderID:       receipt.OrderID,
		Status:        models.DonationSettled,
	}
	if err := h.Tables.InsertDonation(donation); err != nil {
		log.Println("failed to record manual donation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you! Your donation has been recorded.",
		"receipt": receipt,
	})
}

// Recent serves the public recent-donors list with masked contact details.
func (h *DonationHandler) Recent(c *gin.Context) {
	donations, err := h.Tables.RecentDonations(recentDonationsLimit)
	if err != nil {
		log.Println("failed to fetch recent donations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": format.ForDisplay(donations)})
}

// redirectCountdownSeconds is how long the terminal payment pages wait
// before sending the visitor home.
const redirectCountdownSeconds = 10

// Outcome serves the gateway's terminal redirect pages
// (/donation/success|fail|cancel).
func (h *DonationHandler) Outcome(outcome string) gin.HandlerFunc {
	messages := map[string]string{
		"success": "Thank you! Your donation was completed successfully.",
		"fail":    "Your payment could not be completed. No money was taken.",
		"cancel":  "Your payment was cancelled.",
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                 outcome,
			"message":                messages[outcome],
			"redirect":               "/",
			"redirect_after_seconds": redirectCountdownSeconds,
		})
	}
}

func firstError(errs validate.FieldErrors) string {
	for _, msg := range errs {
		return msg
	}
	return "Invalid request"
}

var _ donationTables = (*backend.Client)(nil)
