package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/listing"
	"roktodan/internal/middleware"
	"roktodan/internal/models"
	"roktodan/internal/validate"
)

// donorWriter is the slice of the session backend the become-donor page
// needs.
type donorWriter interface {
	InsertDonor(models.Donor) error
}

// DonorHandler serves the become-donor and find-donor pages.
type DonorHandler struct {
	Listing *listing.Service
}

func NewDonorHandler(l *listing.Service) *DonorHandler {
	return &DonorHandler{Listing: l}
}

// Create registers a donor listing for the signed-in user.
func (h *DonorHandler) Create(c *gin.Context) {
	var form validate.DonorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	errs := validate.Donor(form)
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	st := middleware.StoreFrom(c)
	identity := st.Identity()
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication error. You must be logged in to register a donor.",
		})
		return
	}

	donor := models.Donor{
		CreatedBy:         identity.ID,
		Name:              form.Name,
		Age:               form.Age,
		Gender:            form.Gender,
		BloodGroup:        form.BloodGroup,
		Phone:             form.Phone,
		Email:             optional(form.Email),
		Division:          form.Division,
		District:          form.District,
		LastDonation:      optional(form.LastDonation),
		MedicalConditions: optional(form.MedicalConditions),
		IsAvailable:       true,
		TotalDonations:    0,
	}

	w, ok := st.Backend().(donorWriter)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	if err := w.InsertDonor(donor); err != nil {
		switch backend.KindOf(err) {
		case backend.KindDuplicatePhone:
			c.JSON(http.StatusConflict, gin.H{
				"errors": validate.FieldErrors{"phone": "This phone number is already registered."},
			})
		case backend.KindPermissionDenied:
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Permission denied. Your session might have expired. Please refresh and try again.",
			})
		default:
			log.Println("failed to create donor:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Thank you for registering as a donor!",
		"redirect": "/dashboard",
	})
}

// Find serves the donor/request listing. Both collections are loaded once
// and cached; filters are applied over the cache. ?refresh=1 is the
// user-triggered retry.
func (h *DonorHandler) Find(c *gin.Context) {
	force := c.Query("refresh") == "1"
	if err := h.Listing.Load(force); err != nil {
		log.Println("failed to load listings:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load data. Please check your connection and try again.",
		})
		return
	}

	filter := listing.Filter{
		BloodGroup: c.DefaultQuery("blood_group", "All"),
		Division:   c.Query("division"),
		District:   c.Query("district"),
	}

	tab := c.DefaultQuery("tab", listing.TabDonors)
	switch tab {
	case listing.TabDonors:
		c.JSON(http.StatusOK, gin.H{"tab": tab, "donors": h.Listing.Donors(filter)})
	case listing.TabRequests:
		c.JSON(http.StatusOK, gin.H{"tab": tab, "requests": h.Listing.Requests(filter)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tab: " + tab})
	}
}

// optional maps an empty string to a null column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ donorWriter = (*backend.Client)(nil)
