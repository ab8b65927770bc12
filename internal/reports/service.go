package reports

import (
	"time"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type Service interface {
	// AdminStats returns tenant statistics, or the platform rollup
	// when a tenant-less superadmin asks without selecting a negocio.
	AdminStats(tenantID *uint) (interface{}, error)
	Dashboard(tenantID uint) (*Dashboard, error)
	MonthlyReport(tenantID uint, anio, mes int) (*MonthlyReport, error)
	PlatformStats() (*PlatformStats, error)
	NegocioStats(tenantID uint) (*AdminStats, error)
	RecentActivity(limit int) ([]ActivityItem, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) Service {
	return &service{repo: r, now: time.Now}
}

func (s *service) AdminStats(tenantID *uint) (interface{}, error) {
	if tenantID == nil {
		stats, err := s.repo.PlatformStats()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return stats, nil
	}

	stats, err := s.repo.AdminStats(*tenantID, s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return stats, nil
}

func (s *service) Dashboard(tenantID uint) (*Dashboard, error) {
	d, err := s.repo.Dashboard(tenantID, s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return d, nil
}

func (s *service) MonthlyReport(tenantID uint, anio, mes int) (*MonthlyReport, error) {
	if mes < 1 || mes > 12 {
		return nil, apperr.Validation("mes inválido")
	}
	if anio < 2000 {
		return nil, apperr.Validation("anio inválido")
	}

	report, err := s.repo.MonthlyReport(tenantID, anio, mes)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return report, nil
}

func (s *service) PlatformStats() (*PlatformStats, error) {
	stats, err := s.repo.PlatformStats()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return stats, nil
}

func (s *service) NegocioStats(tenantID uint) (*AdminStats, error) {
	stats, err := s.repo.AdminStats(tenantID, s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return stats, nil
}

func (s *service) RecentActivity(limit int) ([]ActivityItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	items, err := s.repo.RecentActivity(limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}
