package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/notification"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(a *Appointment) error {
	return m.Called(a).Error(0)
}

func (m *mockRepo) FindByID(tenantID, id uint) (*Appointment, error) {
	args := m.Called(tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Appointment), args.Error(1)
}

func (m *mockRepo) Update(a *Appointment) error {
	return m.Called(a).Error(0)
}

func (m *mockRepo) Delete(tenantID, id uint) error {
	return m.Called(tenantID, id).Error(0)
}

func (m *mockRepo) List(tenantID uint, filter ListFilter, limit, offset int) ([]Appointment, int64, error) {
	args := m.Called(tenantID, filter, limit, offset)
	return args.Get(0).([]Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) ListByCliente(tenantID, clienteID uint) ([]Appointment, error) {
	args := m.Called(tenantID, clienteID)
	return args.Get(0).([]Appointment), args.Error(1)
}

func (m *mockRepo) ExistsInTenant(tenantID, id uint) (bool, error) {
	args := m.Called(tenantID, id)
	return args.Bool(0), args.Error(1)
}

type mockClienteStore struct{ mock.Mock }

func (m *mockClienteStore) ExistsInTenant(tenantID, id uint) (bool, error) {
	args := m.Called(tenantID, id)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(n *notification.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotifier) List(tenantID uint, soloNoLeidas bool, limit, offset int) ([]notification.Notification, int64, error) {
	args := m.Called(tenantID, soloNoLeidas, limit, offset)
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotifier) MarkRead(tenantID, id uint) error {
	return m.Called(tenantID, id).Error(0)
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Kind
}

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo, clientes *mockClienteStore, notifier *mockNotifier) *service {
	return &service{
		repo:          repo,
		clientes:      clientes,
		notifications: notifier,
		now:           func() time.Time { return testNow },
	}
}

func TestCreateRejectsPastDate(t *testing.T) {
	svc := newTestService(new(mockRepo), new(mockClienteStore), new(mockNotifier))

	_, err := svc.Create(1, 2, CreateInput{
		ClienteID: 50,
		Fecha:     testNow.AddDate(0, 0, -2),
		Hora:      "10:00",
	})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestCreateUnknownCliente(t *testing.T) {
	clientes := new(mockClienteStore)
	clientes.On("ExistsInTenant", uint(1), uint(50)).Return(false, nil)

	svc := newTestService(new(mockRepo), clientes, new(mockNotifier))
	_, err := svc.Create(1, 2, CreateInput{
		ClienteID: 50,
		Fecha:     testNow.AddDate(0, 0, 3),
		Hora:      "10:00",
	})
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestCreateDefaults(t *testing.T) {
	clientes := new(mockClienteStore)
	clientes.On("ExistsInTenant", uint(1), uint(50)).Return(true, nil)
	repo := new(mockRepo)
	repo.On("Create", mock.Anything).Return(nil)

	svc := newTestService(repo, clientes, new(mockNotifier))
	a, err := svc.Create(1, 2, CreateInput{
		ClienteID: 50,
		Fecha:     testNow.AddDate(0, 0, 3),
		Hora:      "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, EstadoPendiente, a.Estado)
	assert.Equal(t, 60, a.Duracion)
	assert.Equal(t, uint(2), a.UsuarioID)
}

func TestUpdateRescheduleNotifies(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(1), uint(7)).Return(&Appointment{
		ID: 7, TenantID: 1, ClienteID: 50,
		Fecha: testNow.AddDate(0, 0, 3), Hora: "10:00",
		Duracion: 60, Estado: EstadoPendiente,
	}, nil)
	repo.On("Update", mock.Anything).Return(nil)

	notifier := new(mockNotifier)
	notifier.On("Notify", mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Tipo == notification.TipoCitaReagendada && n.ClienteID == 50
	})).Return(nil)

	svc := newTestService(repo, new(mockClienteStore), notifier)
	newFecha := testNow.AddDate(0, 0, 5)
	_, err := svc.Update(1, 7, UpdateInput{Fecha: &newFecha})
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestUpdateWithoutRescheduleStaysQuiet(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(1), uint(7)).Return(&Appointment{
		ID: 7, TenantID: 1, ClienteID: 50,
		Fecha: testNow.AddDate(0, 0, 3), Hora: "10:00",
		Duracion: 60, Estado: EstadoPendiente,
	}, nil)
	repo.On("Update", mock.Anything).Return(nil)

	notifier := new(mockNotifier)
	svc := newTestService(repo, new(mockClienteStore), notifier)
	a, err := svc.Update(1, 7, UpdateInput{Estado: EstadoConfirmada})
	require.NoError(t, err)
	assert.Equal(t, EstadoConfirmada, a.Estado)
	notifier.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestUpdateNotificationFailureIsNonFatal(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(1), uint(7)).Return(&Appointment{
		ID: 7, TenantID: 1, ClienteID: 50,
		Fecha: testNow.AddDate(0, 0, 3), Hora: "10:00",
		Duracion: 60, Estado: EstadoPendiente,
	}, nil)
	repo.On("Update", mock.Anything).Return(nil)

	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything).Return(errors.New("kafka down"))

	svc := newTestService(repo, new(mockClienteStore), notifier)
	_, err := svc.Update(1, 7, UpdateInput{Hora: "12:30"})
	assert.NoError(t, err)
}

func TestUpdateRejectsInvalidEstado(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(1), uint(7)).Return(&Appointment{
		ID: 7, TenantID: 1, Estado: EstadoPendiente,
		Fecha: testNow.AddDate(0, 0, 3), Hora: "10:00",
	}, nil)

	svc := newTestService(repo, new(mockClienteStore), new(mockNotifier))
	_, err := svc.Update(1, 7, UpdateInput{Estado: "DORMIDA"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything)
}
