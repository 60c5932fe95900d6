package services

import (
	"context"
	"fmt"

	"hngpack/internal/config"
	"hngpack/internal/models"
	"hngpack/internal/repositories"
)

// maxListedCollections caps the collection names reported by Diagnose.
const maxListedCollections = 10

// maxErrorText is the number of characters of an error shown in a status.
const maxErrorText = 50

// EnvChecker reports whether an environment setting is present.
type EnvChecker interface {
	Present(key string) bool
}

// DiagnosticsService reports on backend and database availability.
type DiagnosticsService struct {
	repo repositories.DocumentRepository
	env  EnvChecker
}

// NewDiagnosticsService creates a new DiagnosticsService. repo may be nil.
func NewDiagnosticsService(repo repositories.DocumentRepository, env EnvChecker) *DiagnosticsService {
	return &DiagnosticsService{repo: repo, env: env}
}

// Diagnose never fails: every problem is folded into the Database status.
func (s *DiagnosticsService) Diagnose(ctx context.Context) models.Diagnostics {
	d := models.Diagnostics{
		Backend:          models.BackendRunning,
		Database:         models.DatabaseNotAvailable,
		ConnectionStatus: models.ConnectionNotConnected,
		Collections:      []string{},
	}

	s.inspectDatabase(ctx, &d)

	d.DatabaseURL = s.envStatus(config.KeyDatabaseURL)
	d.DatabaseName = s.envStatus(config.KeyDatabaseName)
	return d
}

func (s *DiagnosticsService) inspectDatabase(ctx context.Context, d *models.Diagnostics) {
	defer func() {
		if r := recover(); r != nil {
			d.Database = models.DatabaseError + truncate(fmt.Sprint(r), maxErrorText)
		}
	}()

	if s.repo == nil {
		d.Database = models.DatabaseNotInitialized
		return
	}

	d.Database = models.DatabaseAvailable
	d.ConnectionStatus = models.ConnectionConnected

	names, err := s.repo.ListCollections(ctx)
	if err != nil {
		d.Database = models.DatabaseConnectedError + truncate(err.Error(), maxErrorText)
		return
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	if names != nil {
		d.Collections = names
	}
	d.Database = models.DatabaseWorking
}

func (s *DiagnosticsService) envStatus(key string) string {
	if s.env != nil && s.env.Present(key) {
		return models.EnvSet
	}
	return models.EnvNotSet
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// DatabaseReady reports whether a document store was opened at startup.
func (s *DiagnosticsService) DatabaseReady() bool {
	return s.repo != nil
}
