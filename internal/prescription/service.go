package prescription

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

// ClienteStore verifies referenced clientes; CitaStore verifies the
// optional cita link. Both are satisfied by the owning repositories.
type ClienteStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type CitaStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type Service interface {
	Create(tenantID uint, in CreateInput) (*Prescription, error)
	Get(tenantID, id uint) (*Prescription, error)
	Update(tenantID, id uint, contenido string) (*Prescription, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, clienteID *uint, limit, offset int) ([]Prescription, int64, error)
	RenderPDF(tenantID, id uint, negocioNombre string) ([]byte, error)
}

type service struct {
	repo     Repository
	clientes ClienteStore
	citas    CitaStore
}

func NewService(r Repository, clientes ClienteStore, citas CitaStore) Service {
	return &service{repo: r, clientes: clientes, citas: citas}
}

type CreateInput struct {
	ClienteID uint   `json:"clienteId" binding:"required"`
	CitaID    *uint  `json:"citaId"`
	Contenido string `json:"contenido" binding:"required"`
}

func (s *service) Create(tenantID uint, in CreateInput) (*Prescription, error) {
	ok, err := s.clientes.ExistsInTenant(tenantID, in.ClienteID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound("cliente no encontrado")
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

	p := &Prescription{
		TenantID:  tenantID,
		ClienteID: in.ClienteID,
		CitaID:    in.CitaID,
		Contenido: in.Contenido,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, apperr.From(err, "receta no encontrada")
	}
	return p, nil
}

func (s *service) Get(tenantID, id uint) (*Prescription, error) {
	p, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "receta no encontrada")
	}
	return p, nil
}

func (s *service) Update(tenantID, id uint, contenido string) (*Prescription, error) {
	if contenido == "" {
		return nil, apperr.Validation("contenido requerido")
	}

	p, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "receta no encontrada")
	}

	p.Contenido = contenido
	if err := s.repo.Update(p); err != nil {
		return nil, apperr.From(err, "receta no encontrada")
	}
	return p, nil
}

func (s *service) Delete(tenantID, id uint) error {
	if err := s.repo.Delete(tenantID, id); err != nil {
		return apperr.From(err, "receta no encontrada")
	}
	return nil
}

func (s *service) List(tenantID uint, clienteID *uint, limit, offset int) ([]Prescription, int64, error) {
	return s.repo.List(tenantID, clienteID, limit, offset)
}

// RenderPDF produces a printable receta.
func (s *service) RenderPDF(tenantID, id uint, negocioNombre string) ([]byte, error) {
	p, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "receta no encontrada")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, negocioNombre)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receta #%d", p.ID))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Fecha: "+p.CreatedAt.Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, p.Contenido, "", "L", false)

	pdf.Ln(20)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Generado el "+time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperr.Internal(err)
	}
	return buf.Bytes(), nil
}
