package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"roktodan/internal/listing"
	"roktodan/internal/models"
)

type listingSource struct {
	donors []models.Donor
	reqs   []models.DonationRequest
	err    error
}

func (s *listingSource) AvailableDonors() ([]models.Donor, error) { return s.donors, s.err }

func (s *listingSource) PendingRequests() ([]models.DonationRequest, error) { return s.reqs, s.err }

func findRouter(t *testing.T, src *listingSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewDonorHandler(listing.NewService(src, time.Hour))
	r := gin.New()
	r.GET("/find-donor", h.Find)
	return r
}

func findJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func TestFindDefaultsToDonorsTab(t *testing.T) {
	src := &listingSource{
		donors: []models.Donor{
			{Name: "Rahim", BloodGroup: "O+", Division: "dhaka", District: "gazipur"},
			{Name: "Salma", BloodGroup: "A+", Division: "sylhet", District: "sylhet"},
		},
		reqs: []models.DonationRequest{
			{PatientName: "Fatema", BloodGroup: "O+", Division: "dhaka", District: "dhaka"},
		},
	}
	r := findRouter(t, src)

	code, body := findJSON(t, r, "/find-donor")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["tab"] != "donors" {
		t.Errorf("tab = %v", body["tab"])
	}
	donors, _ := body["donors"].([]interface{})
	if len(donors) != 2 {
		t.Errorf("got %d donors, want 2", len(donors))
	}
}

func TestFindAppliesFilters(t *testing.T) {
	src := &listingSource{
		donors: []models.Donor{
			{Name: "Rahim", BloodGroup: "O+", Division: "dhaka", District: "gazipur"},
			{Name: "Karim", BloodGroup: "O+", Division: "khulna", District: "jessore"},
			{Name: "Salma", BloodGroup: "A+", Division: "dhaka", District: "dhaka"},
		},
	}
	r := findRouter(t, src)

	code, body := findJSON(t, r, "/find-donor?blood_group=O%2B&division=dhaka")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	donors, _ := body["donors"].([]interface{})
	if len(donors) != 1 {
		t.Fatalf("got %d donors, want 1", len(donors))
	}
	first, _ := donors[0].(map[string]interface{})
	if first["name"] != "Rahim" {
		t.Errorf("name = %v", first["name"])
	}
}

func TestFindRequestsTabKeepsFilter(t *testing.T) {
	src := &listingSource{
		reqs: []models.DonationRequest{
			{PatientName: "Fatema", BloodGroup: "O+", Division: "dhaka", District: "dhaka"},
			{PatientName: "Hasan", BloodGroup: "AB+", Division: "khulna", District: "khulna"},
		},
	}
	r := findRouter(t, src)

	code, body := findJSON(t, r, "/find-donor?tab=requests&blood_group=O%2B")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["tab"] != "requests" {
		t.Errorf("tab = %v", body["tab"])
	}
	reqs, _ := body["requests"].([]interface{})
	if len(reqs) != 1 {
		t.Errorf("got %d requests, want 1", len(reqs))
	}
}

func TestFindUnknownTab(t *testing.T) {
	r := findRouter(t, &listingSource{})
	code, _ := findJSON(t, r, "/find-donor?tab=nonsense")
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestFindSurfacesLoadFailure(t *testing.T) {
	src := &listingSource{err: errors.New("backend down")}
	r := findRouter(t, src)

	code, body := findJSON(t, r, "/find-donor")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", code)
	}
	if body["error"] == nil {
		t.Error("missing error message")
	}

	// The page's retry control forces a reload; once the backend is
	// healthy again the same request succeeds.
	src.err = nil
	code, _ = findJSON(t, r, "/find-donor?refresh=1")
	if code != http.StatusOK {
		t.Errorf("retry status = %d, want 200", code)
	}
}
