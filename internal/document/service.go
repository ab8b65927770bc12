package document

import (
	"github.com/google/uuid"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type ClienteStore interface {
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type Service interface {
	Create(tenantID uint, in CreateInput) (*Document, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, clienteID *uint, limit, offset int) ([]Document, int64, error)
}

type service struct {
	repo     Repository
	clientes ClienteStore
}

func NewService(r Repository, clientes ClienteStore) Service {
	return &service{repo: r, clientes: clientes}
}

type CreateInput struct {
	ClienteID *uint  `json:"clienteId"`
	Titulo    string `json:"titulo" binding:"required"`
	Tipo      string `json:"tipo"`
}

func (s *service) Create(tenantID uint, in CreateInput) (*Document, error) {
	if in.ClienteID != nil {
		ok, err := s.clientes.ExistsInTenant(tenantID, *in.ClienteID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !ok {
			return nil, apperr.InvalidReference("el cliente referido no pertenece al negocio")
		}
	}

	d := &Document{
		TenantID:   tenantID,
		ClienteID:  in.ClienteID,
		Titulo:     in.Titulo,
		Tipo:       in.Tipo,
		StorageKey: "doc-" + uuid.NewString(),
	}
	if err := s.repo.Create(d); err != nil {
		return nil, apperr.From(err, "documento no encontrado")
	}
	return d, nil
}

func (s *service) Delete(tenantID, id uint) error {
	if err := s.repo.Delete(tenantID, id); err != nil {
		return apperr.From(err, "documento no encontrado")
	}
	return nil
}

func (s *service) List(tenantID uint, clienteID *uint, limit, offset int) ([]Document, int64, error) {
	return s.repo.List(tenantID, clienteID, limit, offset)
}
