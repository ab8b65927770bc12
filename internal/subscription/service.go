package subscription

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

// RevisionResult summarizes one run of the payment revision sweep.
type RevisionResult struct {
	PagosVencidos       int64            `json:"pagosVencidos"`
	NegociosSuspendidos int64            `json:"negociosSuspendidos"`
	Stats               map[string]int64 `json:"stats"`
}

type Service interface {
	ListPayments(estado string, tenantID *uint, limit, offset int) ([]Payment, int64, error)
	UpdatePayment(id uint, in UpdatePaymentInput) (*Payment, error)
	CreateManualPayment(in ManualPaymentInput) (*Payment, error)
	RunRevision() (*RevisionResult, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) Service {
	return &service{repo: r, now: time.Now}
}

func (s *service) ListPayments(estado string, tenantID *uint, limit, offset int) ([]Payment, int64, error) {
	return s.repo.List(estado, tenantID, limit, offset)
}

type UpdatePaymentInput struct {
	Estado     string `json:"estado" binding:"required"`
	Metodo     string `json:"metodo"`
	Referencia string `json:"referencia"`
}

func (s *service) UpdatePayment(id uint, in UpdatePaymentInput) (*Payment, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}

	if !ValidTransition(p.Estado, in.Estado) {
		return nil, apperr.Validation(fmt.Sprintf("transición de estado inválida: %s -> %s", p.Estado, in.Estado))
	}

	p.Estado = in.Estado
	if in.Metodo != "" {
		p.Metodo = in.Metodo
	}
	if in.Referencia != "" {
		p.Referencia = in.Referencia
	}

	if err := s.repo.Update(p); err != nil {
		return nil, apperr.From(err, "pago no encontrado")
	}
	return p, nil
}

type ManualPaymentInput struct {
	TenantID    uint      `json:"negocioId" binding:"required"`
	Monto       float64   `json:"monto" binding:"required,gt=0"`
	Moneda      string    `json:"moneda"`
	Metodo      string    `json:"metodo"`
	FechaInicio time.Time `json:"fechaInicio" binding:"required"`
	FechaFin    time.Time `json:"fechaFin" binding:"required"`
	Referencia  string    `json:"referencia"`
}

// CreateManualPayment records a payment asserted by a superadmin. It is
// born PAGADO; a manual record exists because the money already moved.
func (s *service) CreateManualPayment(in ManualPaymentInput) (*Payment, error) {
	if !in.FechaFin.After(in.FechaInicio) {
		return nil, apperr.Validation("fechaFin debe ser posterior a fechaInicio")
	}

	p := &Payment{
		TenantID:    in.TenantID,
		Monto:       in.Monto,
		Moneda:      in.Moneda,
		Metodo:      in.Metodo,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		Estado:      EstadoPagado,
		Referencia:  in.Referencia,
	}
	if p.Moneda == "" {
		p.Moneda = "MXN"
	}
	if p.Metodo == "" {
		p.Metodo = "MANUAL"
	}
	if p.Referencia == "" {
		p.Referencia = "MAN-" + uuid.NewString()
	}

	if err := s.repo.Create(p); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return p, nil
}

// RunRevision executes the daily sweep: expire overdue PENDIENTE
// payments, then suspend negocios past the grace window. Both steps
// are set-based updates; running the sweep twice changes nothing the
// second time.
func (s *service) RunRevision() (*RevisionResult, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, -GraceDays)

	vencidos, err := s.repo.ExpireOverduePendientes(now)
	if err != nil {
		return nil, fmt.Errorf("expirar pagos pendientes: %w", err)
	}
	log.Printf("🔄 Revisión de pagos: %d pagos marcados VENCIDO", vencidos)

	suspendidos, err := s.repo.SuspendDelinquents(cutoff, now)
	if err != nil {
		return nil, fmt.Errorf("suspender negocios morosos: %w", err)
	}
	log.Printf("🔄 Revisión de pagos: %d negocios suspendidos", suspendidos)

	stats, err := s.repo.CountByEstado()
	if err != nil {
		return nil, fmt.Errorf("contar pagos por estado: %w", err)
	}

	return &RevisionResult{
		PagosVencidos:       vencidos,
		NegociosSuspendidos: suspendidos,
		Stats:               stats,
	}, nil
}
