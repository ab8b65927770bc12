package subscription

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(p *Payment) error {
	return m.Called(p).Error(0)
}

func (m *mockRepo) FindByID(id uint) (*Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *mockRepo) Update(p *Payment) error {
	return m.Called(p).Error(0)
}

func (m *mockRepo) List(estado string, tenantID *uint, limit, offset int) ([]Payment, int64, error) {
	args := m.Called(estado, tenantID, limit, offset)
	return args.Get(0).([]Payment), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) CountByEstado() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockRepo) ExpireOverduePendientes(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) SuspendDelinquents(cutoff, now time.Time) (int64, error) {
	args := m.Called(cutoff, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{EstadoPendiente, EstadoPagado, true},
		{EstadoPendiente, EstadoRechazado, true},
		{EstadoPendiente, EstadoVencido, true},
		{EstadoPagado, EstadoVencido, true},
		{EstadoRechazado, EstadoVencido, true},
		{EstadoPagado, EstadoPendiente, false},
		{EstadoPagado, EstadoRechazado, false},
		{EstadoRechazado, EstadoPagado, false},
		{EstadoVencido, EstadoPagado, false},
		{EstadoVencido, EstadoVencido, false},
		{EstadoPendiente, EstadoPendiente, false},
		{EstadoPendiente, "CANCELADO", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdatePaymentInvalidTransition(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(5)).Return(&Payment{ID: 5, Estado: EstadoPagado}, nil)

	svc := &service{repo: repo, now: time.Now}
	_, err := svc.UpdatePayment(5, UpdatePaymentInput{Estado: EstadoPendiente})
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdatePaymentResolvesPendiente(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", uint(7)).Return(&Payment{ID: 7, Estado: EstadoPendiente}, nil)
	repo.On("Update", mock.MatchedBy(func(p *Payment) bool {
		return p.Estado == EstadoPagado && p.Referencia == "TRX-99"
	})).Return(nil)

	svc := &service{repo: repo, now: time.Now}
	p, err := svc.UpdatePayment(7, UpdatePaymentInput{Estado: EstadoPagado, Referencia: "TRX-99"})
	require.NoError(t, err)
	assert.Equal(t, EstadoPagado, p.Estado)
	repo.AssertExpectations(t)
}

func TestCreateManualPaymentDefaults(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything).Return(nil)

	svc := &service{repo: repo, now: time.Now}
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.CreateManualPayment(ManualPaymentInput{
		TenantID:    3,
		Monto:       499.0,
		FechaInicio: inicio,
		FechaFin:    inicio.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, EstadoPagado, p.Estado)
	assert.Equal(t, "MXN", p.Moneda)
	assert.Equal(t, "MANUAL", p.Metodo)
	assert.True(t, strings.HasPrefix(p.Referencia, "MAN-"))
}

func TestCreateManualPaymentRejectsInvertedPeriod(t *testing.T) {
	repo := new(mockRepo)
	svc := &service{repo: repo, now: time.Now}

	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateManualPayment(ManualPaymentInput{
		TenantID:    3,
		Monto:       499.0,
		FechaInicio: inicio,
		FechaFin:    inicio,
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRunRevision(t *testing.T) {
	now := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)
	wantCutoff := now.AddDate(0, 0, -GraceDays)

	repo := new(mockRepo)
	repo.On("ExpireOverduePendientes", now).Return(int64(4), nil)
	repo.On("SuspendDelinquents", wantCutoff, now).Return(int64(2), nil)
	repo.On("CountByEstado").Return(map[string]int64{
		EstadoPendiente: 1,
		EstadoPagado:    10,
		EstadoRechazado: 0,
		EstadoVencido:   5,
	}, nil)

	svc := &service{repo: repo, now: func() time.Time { return now }}
	result, err := svc.RunRevision()
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.PagosVencidos)
	assert.Equal(t, int64(2), result.NegociosSuspendidos)
	assert.Equal(t, int64(5), result.Stats[EstadoVencido])
	repo.AssertExpectations(t)
}

func TestRunRevisionSecondPassIsQuiet(t *testing.T) {
	now := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)

	repo := new(mockRepo)
	repo.On("ExpireOverduePendientes", now).Return(int64(0), nil)
	repo.On("SuspendDelinquents", mock.Anything, now).Return(int64(0), nil)
	repo.On("CountByEstado").Return(map[string]int64{}, nil)

	svc := &service{repo: repo, now: func() time.Time { return now }}
	result, err := svc.RunRevision()
	require.NoError(t, err)
	assert.Zero(t, result.PagosVencidos)
	assert.Zero(t, result.NegociosSuspendidos)
}

func TestRunRevisionPropagatesErrors(t *testing.T) {
	now := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)
	boom := errors.New("db down")

	repo := new(mockRepo)
	repo.On("ExpireOverduePendientes", now).Return(int64(0), boom)

	svc := &service{repo: repo, now: func() time.Time { return now }}
	_, err := svc.RunRevision()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "SuspendDelinquents", mock.Anything, mock.Anything)
}
