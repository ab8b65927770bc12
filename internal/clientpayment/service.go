package clientpayment

import (
	"time"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type ClienteStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type CitaStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type Service interface {
	Create(tenantID uint, in CreateInput) (*Payment, error)
	Get(tenantID, id uint) (*Payment, error)
	Update(tenantID, id uint, in UpdateInput) (*Payment, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, estado string, clienteID *uint, limit, offset int) ([]Payment, int64, error)
}

type service struct {
	repo     Repository
	clientes ClienteStore
	citas    CitaStore
	now      func() time.Time
}

func NewService(r Repository, clientes ClienteStore, citas CitaStore) Service {
	return &service{repo: r, clientes: clientes, citas: citas, now: time.Now}
}

type CreateInput struct {
	ClienteID  uint    `json:"clienteId" binding:"required"`
	CitaID     *uint   `json:"citaId"`
	Monto      float64 `json:"monto" binding:"required,gt=0"`
	Moneda     string  `json:"moneda"`
	Concepto   string  `json:"concepto"`
	Metodo     string  `json:"metodo"`
	Estado     string  `json:"estado"`
	Referencia string  `json:"referencia"`
}

func (s *service) Create(tenantID uint, in CreateInput) (*Payment, error) {
	ok, err := s.clientes.ExistsInTenant(tenantID, in.ClienteID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.InvalidReference("el cliente referido no pertenece al negocio")
	}

	if in.CitaID != nil {
		ok, err := s.citas.ExistsInTenant(tenantID, *in.CitaID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !ok {
			return nil, apperr.InvalidReference("la cita referida no pertenece al negocio")
		}
	}

	estado := in.Estado
	if estado == "" {
		estado = EstadoPendiente
	}
	if !ValidEstado(estado) {
		return nil, apperr.Validation("estado de pago inválido: " + estado)
	}

	p := &Payment{
		TenantID:   tenantID,
		ClienteID:  in.ClienteID,
		CitaID:     in.CitaID,
		Monto:      in.Monto,
		Moneda:     in.Moneda,
		Concepto:   in.Concepto,
		Metodo:     in.Metodo,
		Estado:     estado,
		Referencia: in.Referencia,
	}
	if p.Moneda == "" {
		p.Moneda = "MXN"
	}
	if estado == EstadoPagado {
		now := s.now()
		p.FechaPago = &now
	}

	if err := s.repo.Create(p); err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}
	return p, nil
}

func (s *service) Get(tenantID, id uint) (*Payment, error) {
	p, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}
	return p, nil
}

type UpdateInput struct {
	Monto      *float64 `json:"monto"`
	Concepto   string   `json:"concepto"`
	Metodo     string   `json:"metodo"`
	Estado     string   `json:"estado"`
	Referencia string   `json:"referencia"`
}

func (s *service) Update(tenantID, id uint, in UpdateInput) (*Payment, error) {
	p, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}

	if in.Monto != nil {
		if *in.Monto <= 0 {
			return nil, apperr.Validation("monto debe ser mayor a cero")
		}
		p.Monto = *in.Monto
	}
	if in.Concepto != "" {
		p.Concepto = in.Concepto
	}
	if in.Metodo != "" {
		p.Metodo = in.Metodo
	}
	if in.Referencia != "" {
		p.Referencia = in.Referencia
	}
	if in.Estado != "" && in.Estado != p.Estado {
		if !ValidEstado(in.Estado) {
			return nil, apperr.Validation("estado de pago inválido: " + in.Estado)
		}
		p.Estado = in.Estado
		// FechaPago records the first transition to PAGADO and is
		// never cleared afterwards.
		if in.Estado == EstadoPagado && p.FechaPago == nil {
			now := s.now()
			p.FechaPago = &now
		}
	}

	if err := s.repo.Update(p); err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}
	return p, nil
}

func (s *service) Delete(tenantID, id uint) error {
	if err := s.repo.Delete(tenantID, id); err != nil {
		return apperr.From(err, "pago no encontrado")
	}
	return nil
}

func (s *service) List(tenantID uint, estado string, clienteID *uint, limit, offset int) ([]Payment, int64, error) {
	return s.repo.List(tenantID, estado, clienteID, limit, offset)
}
