package notification

import (
	"log"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/utils"
)

type Service interface {
	// Notify persists an in-app notification and publishes the event.
	// Best effort: callers treat a failure as non-fatal.
	Notify(n *Notification) error
	List(tenantID uint, soloNoLeidas bool, limit, offset int) ([]Notification, int64, error)
	MarkRead(tenantID, id uint) error
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) Notify(n *Notification) error {
	if err := s.repo.Create(n); err != nil {
		log.Printf("⚠️ No se pudo guardar la notificación (%s): %v", n.Tipo, err)
		return err
	}
	utils.PublishEvent(n.Tipo, n)
	return nil
}

func (s *service) List(tenantID uint, soloNoLeidas bool, limit, offset int) ([]Notification, int64, error) {
	return s.repo.List(tenantID, soloNoLeidas, limit, offset)
}

func (s *service) MarkRead(tenantID, id uint) error {
	if err := s.repo.MarkRead(tenantID, id); err != nil {
		return apperr.From(err, "notificación no encontrada")
	}
	return nil
}
