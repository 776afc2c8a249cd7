package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roktodan/internal/validate"
)

// ContactHandler serves the contact page form.
type ContactHandler struct{}

func NewContactHandler() *ContactHandler { return &ContactHandler{} }

func (h *ContactHandler) Submit(c *gin.Context) {
	var form validate.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	errs := validate.Contact(form)
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you for reaching out. We will get back to you soon.",
	})
}
