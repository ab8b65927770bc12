package auditlog

import (
	"encoding/json"
	"log"
)

type Service interface {
	// LogAction records an audited action. Failures are logged and
	// swallowed; auditing never fails the audited operation.
	LogAction(userID, tenantID *uint, action, ip, status string, details map[string]interface{})
	List(action string, tenantID *uint, limit, offset int) ([]AuditLog, int64, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) LogAction(userID, tenantID *uint, action, ip, status string, details map[string]interface{}) {
	var raw []byte
	if details != nil {
		var err error
		raw, err = json.Marshal(details)
		if err != nil {
			log.Printf("⚠️ Audit details marshal failed for %s: %v", action, err)
			raw = nil
		}
	}

	entry := &AuditLog{
		UserID:    userID,
		TenantID:  tenantID,
		Action:    action,
		Details:   raw,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(entry); err != nil {
		log.Printf("⚠️ Audit write failed for %s: %v", action, err)
	}
}

func (s *service) List(action string, tenantID *uint, limit, offset int) ([]AuditLog, int64, error) {
	return s.repo.List(action, tenantID, limit, offset)
}
