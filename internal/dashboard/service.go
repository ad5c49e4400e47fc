// File: internal/dashboard/service.go
package dashboard

import (
	"context"

	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/user"

	"golang.org/x/sync/errgroup"
)

// UserStats is the part of the user service the dashboard reads.
type UserStats interface {
	CountUsers(ctx context.Context) (int64, error)
	RecentUsers(ctx context.Context, n int) ([]user.User, error)
}

// RequestStats is the part of the blood request service the dashboard reads.
type RequestStats interface {
	Count(ctx context.Context, filter bloodrequest.Filter) (int64, error)
	Recent(ctx context.Context, n int) ([]bloodrequest.BloodRequest, error)
}

// Counter counts rows of a single table.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// PublicStats is the landing page summary.
type PublicStats struct {
	Donors     int64 `json:"donors"`
	Drives     int   `json:"drives"`
	Regions    int   `json:"regions"`
	Volunteers int64 `json:"volunteers"`
}

// Totals are the admin dashboard counters.
type Totals struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalRequests     int64 `json:"totalRequests"`
	PendingRequests   int64 `json:"pendingRequests"`
	CompletedRequests int64 `json:"completedRequests"`
	TotalVolunteers   int64 `json:"totalVolunteers"`
	TotalContacts     int64 `json:"totalContacts"`
}

// Overview is everything the admin dashboard shows on load.
type Overview struct {
	Stats          Totals
	RecentUsers    []user.User
	RecentRequests []bloodrequest.BloodRequest
}

// Service aggregates counts across the other stores.
type Service struct {
	users      UserStats
	requests   RequestStats
	volunteers Counter
	contacts   Counter
	cfg        *config.Config
}

// NewService creates a new dashboard service.
func NewService(users UserStats, requests RequestStats, volunteers, contacts Counter, cfg *config.Config) *Service {
	return &Service{users: users, requests: requests, volunteers: volunteers, contacts: contacts, cfg: cfg}
}

// Public returns the landing page figures. Drives and regions come from config.
func (s *Service) Public(ctx context.Context) (PublicStats, error) {
	stats := PublicStats{Drives: s.cfg.StatsDrives, Regions: s.cfg.StatsRegions}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Donors, err = s.users.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Volunteers, err = s.volunteers.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return PublicStats{Drives: s.cfg.StatsDrives, Regions: s.cfg.StatsRegions}, err
	}
	return stats, nil
}

// Overview gathers the admin counters and the most recent users and requests.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		o.Stats.TotalUsers, err = s.users.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		o.Stats.TotalRequests, err = s.requests.Count(gctx, bloodrequest.Filter{})
		return err
	})
	g.Go(func() (err error) {
		o.Stats.PendingRequests, err = s.requests.Count(gctx, bloodrequest.Filter{Status: string(bloodrequest.StatusPending)})
		return err
	})
	g.Go(func() (err error) {
		o.Stats.CompletedRequests, err = s.requests.Count(gctx, bloodrequest.Filter{Status: string(bloodrequest.StatusCompleted)})
		return err
	})
	g.Go(func() (err error) {
		o.Stats.TotalVolunteers, err = s.volunteers.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		o.Stats.TotalContacts, err = s.contacts.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		o.RecentUsers, err = s.users.RecentUsers(gctx, common.RecentItemsCount)
		return err
	})
	g.Go(func() (err error) {
		o.RecentRequests, err = s.requests.Recent(gctx, common.RecentItemsCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}
