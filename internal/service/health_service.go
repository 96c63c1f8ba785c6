package service

import (
	"context"
	"log"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Checker is anything able to report its own availability.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

type HealthReport struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Storage  string `json:"storage"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == StatusOK
}

type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	db      Checker
	cache   Checker
	storage Checker
}

// NewHealthService accepts nil checkers for dependencies that are not configured.
func NewHealthService(db, cache, storage Checker) HealthService {
	return &healthService{db: db, cache: cache, storage: storage}
}

func (h *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:   StatusOK,
		Database: h.status(ctx, "database", h.db),
		Cache:    h.status(ctx, "cache", h.cache),
		Storage:  h.status(ctx, "storage", h.storage),
	}

	if report.Database == StatusUnavailable || report.Cache == StatusUnavailable || report.Storage == StatusUnavailable {
		report.Status = StatusUnavailable
	}

	return report
}

func (h *healthService) status(ctx context.Context, name string, c Checker) string {
	if c == nil {
		return "disabled"
	}
	if err := c.HealthCheck(ctx); err != nil {
		log.Printf("Health check %s: %v", name, err)
		return StatusUnavailable
	}
	return StatusOK
}
