package appointment

import (
	"fmt"
	"time"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/notification"
)

// ClienteStore verifies that a referenced cliente belongs to the
// negocio. Satisfied by the client repository.
type ClienteStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type Service interface {
	Create(tenantID, usuarioID uint, in CreateInput) (*Appointment, error)
	Get(tenantID, id uint) (*Appointment, error)
	Update(tenantID, id uint, in UpdateInput) (*Appointment, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, filter ListFilter, limit, offset int) ([]Appointment, int64, error)
}

type service struct {
	repo          Repository
	clientes      ClienteStore
	notifications notification.Service
	now           func() time.Time
}

func NewService(r Repository, clientes ClienteStore, notifications notification.Service) Service {
	return &service{repo: r, clientes: clientes, notifications: notifications, now: time.Now}
}

type CreateInput struct {
	ClienteID uint      `json:"clienteId" binding:"required"`
	Fecha     time.Time `json:"fecha" binding:"required"`
	Hora      string    `json:"hora" binding:"required"`
	Duracion  int       `json:"duracion"`
	Motivo    string    `json:"motivo"`
	Notas     string    `json:"notas"`
}

func (s *service) Create(tenantID, usuarioID uint, in CreateInput) (*Appointment, error) {
	if in.Fecha.Before(s.now().Truncate(24 * time.Hour)) {
		return nil, apperr.Validation("la fecha de la cita no puede estar en el pasado")
	}

	ok, err := s.clientes.ExistsInTenant(tenantID, in.ClienteID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound("cliente no encontrado")
	}

	a := &Appointment{
		TenantID:  tenantID,
		ClienteID: in.ClienteID,
		UsuarioID: usuarioID,
		Fecha:     in.Fecha,
		Hora:      in.Hora,
		Duracion:  in.Duracion,
		Motivo:    in.Motivo,
		Estado:    EstadoPendiente,
		Notas:     in.Notas,
	}
	if a.Duracion <= 0 {
		a.Duracion = 60
	}

	if err := s.repo.Create(a); err != nil {
		return nil, apperr.From(err, "cita no encontrada")
	}
	return a, nil
}

func (s *service) Get(tenantID, id uint) (*Appointment, error) {
	a, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "cita no encontrada")
	}
	return a, nil
}

type UpdateInput struct {
	Fecha    *time.Time `json:"fecha"`
	Hora     string     `json:"hora"`
	Duracion *int       `json:"duracion"`
	Motivo   string     `json:"motivo"`
	Estado   string     `json:"estado"`
	Notas    string     `json:"notas"`
}

func (s *service) Update(tenantID, id uint, in UpdateInput) (*Appointment, error) {
	a, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "cita no encontrada")
	}

	rescheduled := false
	if in.Fecha != nil && !in.Fecha.Equal(a.Fecha) {
		if in.Fecha.Before(s.now().Truncate(24 * time.Hour)) {
			return nil, apperr.Validation("la fecha de la cita no puede estar en el pasado")
		}
		a.Fecha = *in.Fecha
		rescheduled = true
	}
	if in.Hora != "" && in.Hora != a.Hora {
		a.Hora = in.Hora
		rescheduled = true
	}
	if in.Duracion != nil && *in.Duracion > 0 {
		a.Duracion = *in.Duracion
	}
	if in.Motivo != "" {
		a.Motivo = in.Motivo
	}
	if in.Estado != "" {
		if !ValidEstado(in.Estado) {
			return nil, apperr.Validation("estado de cita inválido: " + in.Estado)
		}
		a.Estado = in.Estado
	}
	if in.Notas != "" {
		a.Notas = in.Notas
	}

	if err := s.repo.Update(a); err != nil {
		return nil, apperr.From(err, "cita no encontrada")
	}

	// A moved cita notifies the cliente. Failure here never fails the
	// update itself.
	if rescheduled {
		_ = s.notifications.Notify(&notification.Notification{
			TenantID:  tenantID,
			ClienteID: a.ClienteID,
			Tipo:      notification.TipoCitaReagendada,
			Asunto:    "Tu cita fue reagendada",
			Contenido: fmt.Sprintf("Tu cita fue reagendada para el %s a las %s", a.Fecha.Format("2006-01-02"), a.Hora),
		})
	}

	return a, nil
}

func (s *service) Delete(tenantID, id uint) error {
	if err := s.repo.Delete(tenantID, id); err != nil {
		return apperr.From(err, "cita no encontrada")
	}
	return nil
}

func (s *service) List(tenantID uint, filter ListFilter, limit, offset int) ([]Appointment, int64, error) {
	return s.repo.List(tenantID, filter, limit, offset)
}
