package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/middleware"
	"roktodan/internal/models"
)

type historyReader interface {
	DonationHistory(userID string) ([]models.DonationHistoryEntry, error)
	RequestHistory(userID string) ([]models.RequestHistoryEntry, error)
}

// DashboardHandler serves the signed-in user's past donations and requests.
// Both tables are read-only for this service.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

func (h *DashboardHandler) Show(c *gin.Context) {
	st := middleware.StoreFrom(c)
	identity := st.Identity()
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/signin"})
		return
	}

	r, ok := st.Backend().(historyReader)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}

	donations, err := r.DonationHistory(identity.ID)
	if err != nil {
		log.Println("failed to fetch donation history:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch your history"})
		return
	}
	requests, err := r.RequestHistory(identity.ID)
	if err != nil {
		log.Println("failed to fetch request history:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch your history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   st.Profile(),
		"donations": donations,
		"requests":  requests,
	})
}

var _ historyReader = (*backend.Client)(nil)
