package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/locations"
	"roktodan/internal/middleware"
	"roktodan/internal/session"
	"roktodan/internal/validate"
)

// ProfileHandler serves the signed-in user's own record.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

// Me returns the authenticated identity with its cached profile. A nil
// profile is a registered identity that has not finished registration yet.
func (h *ProfileHandler) Me(c *gin.Context) {
	st := middleware.StoreFrom(c)
	identity := st.Identity()
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/signin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    identity,
		"profile": st.Profile(),
	})
}

// profileFields is the whitelist of columns a client may update.
var profileFields = map[string]bool{
	"name":               true,
	"phone":              true,
	"blood_group":        true,
	"date_of_birth":      true,
	"gender":             true,
	"division":           true,
	"district":           true,
	"last_donation":      true,
	"is_available":       true,
	"medical_conditions": true,
}

// Update applies partial profile fields through the session store, which
// re-fetches the row on success.
func (h *ProfileHandler) Update(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updates := make(map[string]interface{}, len(body))
	for k, v := range body {
		if profileFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields in request."})
		return
	}

	errs := validate.FieldErrors{}
	if phone, ok := updates["phone"].(string); ok && !validate.ValidPhone(phone) {
		errs.Add("phone", "Please enter a valid Bangladeshi phone number (e.g., 01712345678)")
	}
	if division, ok := updates["division"].(string); ok {
		if !locations.ValidDivision(division) {
			errs.Add("division", "Please select a valid division")
		}
		// Changing division resets a district that does not belong to it.
		district, _ := updates["district"].(string)
		updates["district"] = locations.NormalizeDistrict(division, district)
	}
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	st := middleware.StoreFrom(c)
	if err := st.UpdateProfile(updates); err != nil {
		if errors.Is(err, session.ErrNoUser) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No user is logged in", "redirect": "/signin"})
			return
		}
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
			log.Println("failed to update profile:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"profile": st.Profile(),
	})
}
