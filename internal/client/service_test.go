package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/appointment"
	"github.com/draftbook/clinic-management-backend/internal/clientpayment"
	"github.com/draftbook/clinic-management-backend/internal/document"
	"github.com/draftbook/clinic-management-backend/internal/prescription"
)

// Lightweight fakes: embed the interface and implement only what the
// test path touches.

type fakeClientRepo struct {
	Repository
	byID map[uint]*Client
}

func (f *fakeClientRepo) FindByID(tenantID, id uint) (*Client, error) {
	c, ok := f.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type fakeCitaRepo struct {
	appointment.Repository
	citas []appointment.Appointment
}

func (f *fakeCitaRepo) ListByCliente(tenantID, clienteID uint) ([]appointment.Appointment, error) {
	return f.citas, nil
}

type fakeRecetaRepo struct {
	prescription.Repository
	recetas []prescription.Prescription
}

func (f *fakeRecetaRepo) ListByCliente(tenantID, clienteID uint) ([]prescription.Prescription, error) {
	return f.recetas, nil
}

type fakeDocRepo struct {
	document.Repository
	docs []document.Document
}

func (f *fakeDocRepo) ListByCliente(tenantID, clienteID uint) ([]document.Document, error) {
	return f.docs, nil
}

type fakePagoRepo struct {
	clientpayment.Repository
	pagos []clientpayment.Payment
	err   error
}

func (f *fakePagoRepo) ListByCliente(tenantID, clienteID uint) ([]clientpayment.Payment, error) {
	return f.pagos, f.err
}

func TestGetCrossTenantBehavesAsMissing(t *testing.T) {
	repo := &fakeClientRepo{byID: map[uint]*Client{
		50: {ID: 50, TenantID: 2, Nombre: "Ana"},
	}}
	svc := &service{repo: repo}

	_, err := svc.Get(1, 50)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.KindNotFound, ae.Kind)

	got, err := svc.Get(2, 50)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := &service{repo: &fakeClientRepo{}}
	_, err := svc.Search(1, "")
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.KindValidation, ae.Kind)
}

func TestGetExpediente(t *testing.T) {
	repo := &fakeClientRepo{byID: map[uint]*Client{
		50: {ID: 50, TenantID: 1, Nombre: "Ana"},
	}}
	svc := &service{
		repo:    repo,
		citas:   &fakeCitaRepo{citas: []appointment.Appointment{{ID: 7, ClienteID: 50}}},
		recetas: &fakeRecetaRepo{recetas: []prescription.Prescription{{ID: 3, ClienteID: 50}}},
		docs:    &fakeDocRepo{docs: []document.Document{{ID: 9}}},
		pagos:   &fakePagoRepo{pagos: []clientpayment.Payment{{ID: 12, ClienteID: 50}}},
	}

	exp, err := svc.GetExpediente(1, 50)
	require.NoError(t, err)
	assert.Equal(t, "Ana", exp.Cliente.Nombre)
	assert.Len(t, exp.Citas, 1)
	assert.Len(t, exp.Recetas, 1)
	assert.Len(t, exp.Documentos, 1)
	assert.Len(t, exp.Pagos, 1)
}

func TestGetExpedientePropagatesListError(t *testing.T) {
	repo := &fakeClientRepo{byID: map[uint]*Client{
		50: {ID: 50, TenantID: 1, Nombre: "Ana"},
	}}
	svc := &service{
		repo:    repo,
		citas:   &fakeCitaRepo{},
		recetas: &fakeRecetaRepo{},
		docs:    &fakeDocRepo{},
		pagos:   &fakePagoRepo{err: errors.New("db down")},
	}

	_, err := svc.GetExpediente(1, 50)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.KindInternal, ae.Kind)
}
