package services

import (
	"context"
	"time"

	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
)

type healthService struct {
	BaseService
	db       portsrepo.HealthChecker
	advisory portssvc.AdvisorySvc
}

// NewHealthService creates a health service. db may be nil when the storage backend has
// nothing to ping.
func NewHealthService(db portsrepo.HealthChecker, advisory portssvc.AdvisorySvc) portssvc.HealthSvc {
	return &healthService{db: db, advisory: advisory}
}

func (s *healthService) Check(ctx context.Context) map[string]string {
	status := map[string]string{"database": "healthy"}
	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.db.Ping(pingCtx); err != nil {
			s.LogError(ctx, err, "Database health check failed")
			status["database"] = "unhealthy"
		}
	}
	if s.advisory != nil {
		status["llm"] = s.advisory.Status()
	}
	return status
}
