package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/middleware"
	"roktodan/internal/models"
	"roktodan/internal/validate"
)

type requestWriter interface {
	InsertRequest(models.DonationRequest) error
}

// RequestHandler serves the donation-request page.
type RequestHandler struct{}

func NewRequestHandler() *RequestHandler { return &RequestHandler{} }

// Create posts a donation request for the signed-in user. Status starts at
// pending; transitions happen backend-side.
func (h *RequestHandler) Create(c *gin.Context) {
	var form validate.RequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	errs := validate.Request(form, time.Now())
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	st := middleware.StoreFrom(c)
	identity := st.Identity()
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication error. You must be logged in to submit a request.",
		})
		return
	}

	req := models.DonationRequest{
		CreatedBy:      identity.ID,
		PatientName:    form.PatientName,
		Hospital:       form.Hospital,
		BloodGroup:     form.BloodGroup,
		RequiredUnits:  form.RequiredUnits,
		RequiredDate:   form.RequiredDate,
		Division:       form.Division,
		District:       form.District,
		ContactPerson:  form.ContactPerson,
		ContactPhone:   form.ContactPhone,
		AdditionalInfo: optional(form.AdditionalInfo),
		Status:         models.RequestPending,
	}

	w, ok := st.Backend().(requestWriter)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	if err := w.InsertRequest(req); err != nil {
		switch backend.KindOf(err) {
		case backend.KindPermissionDenied:
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Permission denied. Your session might have expired. Please refresh and try again.",
			})
		default:
			log.Println("failed to create donation request:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Your donation request has been submitted.",
	})
}

var _ requestWriter = (*backend.Client)(nil)
