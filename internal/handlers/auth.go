package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/middleware"
	"roktodan/internal/validate"
)

// AuthHandler serves the sign-up, sign-in, OTP and callback endpoints. All
// auth state lives in the request's session store.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler { return &AuthHandler{} }

// resendCooldownSeconds is surfaced to the client so it can disable the
// resend control between requests.
const resendCooldownSeconds = 60

// SignUp registers a new identity with its profile fields as signup
// metadata. On success the client continues at the OTP screen, carrying the
// submitted email.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var form validate.SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	errs := validate.SignUp(form, time.Now())
	if !errs.Ok() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	metadata := map[string]interface{}{
		"name":          form.Name,
		"phone":         form.Phone,
		"blood_group":   form.BloodGroup,
		"date_of_birth": form.DateOfBirth,
		"gender":        form.Gender,
		"division":      form.Division,
		"district":      form.District,
	}
	if form.LastDonation != "" {
		metadata["last_donation"] = form.LastDonation
	}
	if form.MedicalConditions != "" {
		metadata["medical_conditions"] = form.MedicalConditions
	}

	st := middleware.StoreFrom(c)
	_, err := st.SignUp(form.Email, form.Password, metadata)
	if err != nil {
		switch backend.KindOf(err) {
		case backend.KindDuplicatePhone:
			// The phone column is globally unique; point the message at
			// the field, not at the form.
			c.JSON(http.StatusConflict, gin.H{
				"errors": validate.FieldErrors{"phone": "This phone number is already registered."},
			})
		case backend.KindDuplicateEmail:
			c.JSON(http.StatusConflict, gin.H{
				"errors": validate.FieldErrors{"email": "This email is already registered. Please sign in."},
			})
		default:
			log.Println("sign up failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign up failed. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Please verify your email.",
		"next":    "/verify-otp",
		"email":   form.Email,
	})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn performs a password sign-in.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	st := middleware.StoreFrom(c)
	sess, err := st.SignIn(req.Email, req.Password)
	if err != nil {
		switch backend.KindOf(err) {
		case backend.KindInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		case backend.KindNetwork:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not reach the server. Please try again."})
		default:
			log.Println("sign in failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"user":    gin.H{"id": sess.UserID, "email": sess.Email},
	})
}

// SignOut ends the session. The local session is cleared even when backend
// revocation fails; the client is always sent to the sign-in screen.
func (h *AuthHandler) SignOut(c *gin.Context) {
	st := middleware.StoreFrom(c)
	if err := st.SignOut(); err != nil {
		log.Println("sign out revocation failed:", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out.", "redirect": "/signin"})
}

type verifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required,len=6"`
}

// VerifyOtp confirms a signup with the emailed 6-digit code.
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter the 6-digit code sent to your email."})
		return
	}

	st := middleware.StoreFrom(c)
	if _, err := st.VerifyOtp(req.Email, req.Token); err != nil {
		switch backend.KindOf(err) {
		case backend.KindOTPInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code. Please try again."})
		default:
			log.Println("otp verification failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Email verified successfully. You can now sign in.",
		"redirect": "/signin",
	})
}

type resendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendOtp asks the backend to email a fresh signup code.
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req resendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	st := middleware.StoreFrom(c)
	if err := st.ResendOtp(req.Email); err != nil {
		log.Println("otp resend failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resend the code. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "A new code has been sent to your email.",
		"cooldown_seconds": resendCooldownSeconds,
	})
}

// Callback handles the email-confirmation redirect from the auth backend.
// A failed confirmation sends the visitor to the sign-in screen after a
// short delay.
func (h *AuthHandler) Callback(c *gin.Context) {
	if msg := c.Query("error_description"); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                  msg,
			"redirect":               "/signin",
			"redirect_after_seconds": 3,
		})
		return
	}

	accessToken := c.Query("access_token")
	refreshToken := c.Query("refresh_token")
	if accessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                  "An error occurred during email confirmation",
			"redirect":               "/signin",
			"redirect_after_seconds": 3,
		})
		return
	}

	st := middleware.StoreFrom(c)
	if _, err := st.AdoptSession(accessToken, refreshToken); err != nil {
		log.Println("auth callback rejected:", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                  "An error occurred during email confirmation",
			"redirect":               "/signin",
			"redirect_after_seconds": 3,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": "/dashboard"})
}
