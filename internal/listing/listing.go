// Package listing backs the find-donor page: both collections are fetched
// once in parallel and cached, and every filter combination is computed
// synchronously over the cache without another fetch.
package listing

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"roktodan/internal/models"
)

// Tabs of the find-donor page.
const (
	TabDonors   = "donors"
	TabRequests = "requests"
)

// Filter is the active filter set. Filters persist across tab switches; the
// tab only selects which cached collection is filtered.
type Filter struct {
	BloodGroup string // exact match, or "All"/"" for everything
	Division   string // case-insensitive exact, "" matches everything
	District   string // case-insensitive exact, applied only when non-empty
}

func (f Filter) matches(bloodGroup, division, district string) bool {
	groupOK := f.BloodGroup == "" || f.BloodGroup == "All" || bloodGroup == f.BloodGroup
	divisionOK := f.Division == "" || strings.EqualFold(division, f.Division)
	districtOK := f.District == "" || strings.EqualFold(district, f.District)
	return groupOK && divisionOK && districtOK
}

// FilterDonors returns the donors matching the filter, order preserved.
func FilterDonors(donors []models.Donor, f Filter) []models.Donor {
	out := make([]models.Donor, 0, len(donors))
	for _, d := range donors {
		if f.matches(d.BloodGroup, d.Division, d.District) {
			out = append(out, d)
		}
	}
	return out
}

// FilterRequests returns the requests matching the filter, order preserved.
func FilterRequests(requests []models.DonationRequest, f Filter) []models.DonationRequest {
	out := make([]models.DonationRequest, 0, len(requests))
	for _, r := range requests {
		if f.matches(r.BloodGroup, r.Division, r.District) {
			out = append(out, r)
		}
	}
	return out
}

// Source supplies the two independently fetched collections.
type Source interface {
	AvailableDonors() ([]models.Donor, error)
	PendingRequests() ([]models.DonationRequest, error)
}

// Service caches both collections and filters them on demand.
type Service struct {
	src Source
	ttl time.Duration

	mu       sync.RWMutex
	donors   []models.Donor
	requests []models.DonationRequest
	loadedAt time.Time
	loaded   bool
}

// NewService builds a listing service whose cache is considered fresh for
// ttl after a load.
func NewService(src Source, ttl time.Duration) *Service {
	return &Service{src: src, ttl: ttl}
}

// Load fetches donors and pending requests in parallel and replaces the
// cache. With force false a fresh cache is kept as-is. A failed load leaves
// the previous cache untouched and is surfaced once; retry is caller
// triggered.
func (s *Service) Load(force bool) error {
	s.mu.RLock()
	fresh := s.loaded && time.Since(s.loadedAt) < s.ttl
	s.mu.RUnlock()
	if fresh && !force {
		return nil
	}

	var (
		donors   []models.Donor
		requests []models.DonationRequest
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		donors, err = s.src.AvailableDonors()
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.src.PendingRequests()
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.donors = donors
	s.requests = requests
	s.loadedAt = time.Now()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Donors filters the cached donor collection.
func (s *Service) Donors(f Filter) []models.Donor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterDonors(s.donors, f)
}

// Requests filters the cached request collection.
func (s *Service) Requests(f Filter) []models.DonationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterRequests(s.requests, f)
}
