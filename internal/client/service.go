package client

import (
	"time"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/appointment"
	"github.com/draftbook/clinic-management-backend/internal/clientpayment"
	"github.com/draftbook/clinic-management-backend/internal/document"
	"github.com/draftbook/clinic-management-backend/internal/prescription"
)

// Expediente is the full record of one cliente: personal data plus
// everything the negocio holds about them.
type Expediente struct {
	Cliente    *Client                     `json:"cliente"`
	Citas      []appointment.Appointment   `json:"citas"`
	Recetas    []prescription.Prescription `json:"recetas"`
	Documentos []document.Document         `json:"documentos"`
	Pagos      []clientpayment.Payment     `json:"pagos"`
}

type Service interface {
	Create(tenantID uint, in CreateInput) (*Client, error)
	Get(tenantID, id uint) (*Client, error)
	Update(tenantID, id uint, in UpdateInput) (*Client, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, limit, offset int) ([]Client, int64, error)
	Search(tenantID uint, query string) ([]Client, error)
	GetExpediente(tenantID, id uint) (*Expediente, error)
}

type service struct {
	repo    Repository
	citas   appointment.Repository
	recetas prescription.Repository
	docs    document.Repository
	pagos   clientpayment.Repository
}

func NewService(
	r Repository,
	citas appointment.Repository,
	recetas prescription.Repository,
	docs document.Repository,
	pagos clientpayment.Repository,
) Service {
	return &service{repo: r, citas: citas, recetas: recetas, docs: docs, pagos: pagos}
}

type CreateInput struct {
	Nombre          string     `json:"nombre" binding:"required"`
	Apellido        string     `json:"apellido"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono"`
	FechaNacimiento *time.Time `json:"fechaNacimiento"`
	Genero          string     `json:"genero"`
	Direccion       string     `json:"direccion"`
}

func (s *service) Create(tenantID uint, in CreateInput) (*Client, error) {
	cl := &Client{
		TenantID:        tenantID,
		Nombre:          in.Nombre,
		Apellido:        in.Apellido,
		Email:           in.Email,
		Telefono:        in.Telefono,
		FechaNacimiento: in.FechaNacimiento,
		Genero:          in.Genero,
		Direccion:       in.Direccion,
	}
	if err := s.repo.Create(cl); err != nil {
		return nil, apperr.From(err, "cliente no encontrado")
	}
	return cl, nil
}

func (s *service) Get(tenantID, id uint) (*Client, error) {
	cl, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "cliente no encontrado")
	}
	return cl, nil
}

type UpdateInput struct {
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono"`
	FechaNacimiento *time.Time `json:"fechaNacimiento"`
	Genero          string     `json:"genero"`
	Direccion       string     `json:"direccion"`
}

func (s *service) Update(tenantID, id uint, in UpdateInput) (*Client, error) {
	cl, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "cliente no encontrado")
	}

	if in.Nombre != "" {
		cl.Nombre = in.Nombre
	}
	if in.Apellido != "" {
		cl.Apellido = in.Apellido
	}
	if in.Email != "" {
		cl.Email = in.Email
	}
	if in.Telefono != "" {
		cl.Telefono = in.Telefono
	}
	if in.FechaNacimiento != nil {
		cl.FechaNacimiento = in.FechaNacimiento
	}
	if in.Genero != "" {
		cl.Genero = in.Genero
	}
	if in.Direccion != "" {
		cl.Direccion = in.Direccion
	}

	if err := s.repo.Update(cl); err != nil {
		return nil, apperr.From(err, "cliente no encontrado")
	}
	return cl, nil
}

func (s *service) Delete(tenantID, id uint) error {
	if err := s.repo.Delete(tenantID, id); err != nil {
		return apperr.From(err, "cliente no encontrado")
	}
	return nil
}

func (s *service) List(tenantID uint, limit, offset int) ([]Client, int64, error) {
	return s.repo.List(tenantID, limit, offset)
}

func (s *service) Search(tenantID uint, query string) ([]Client, error) {
	if query == "" {
		return nil, apperr.Validation("parámetro q requerido")
	}
	return s.repo.Search(tenantID, query, 20)
}

func (s *service) GetExpediente(tenantID, id uint) (*Expediente, error) {
	cl, err := s.repo.FindByID(tenantID, id)
	if err != nil {
		return nil, apperr.From(err, "cliente no encontrado")
	}

	citas, err := s.citas.ListByCliente(tenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	recetas, err := s.recetas.ListByCliente(tenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	docs, err := s.docs.ListByCliente(tenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	pagos, err := s.pagos.ListByCliente(tenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Expediente{
		Cliente:    cl,
		Citas:      citas,
		Recetas:    recetas,
		Documentos: docs,
		Pagos:      pagos,
	}, nil
}
