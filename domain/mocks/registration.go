// Package mocks holds testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"studentportal/domain"

	"github.com/stretchr/testify/mock"
)

type RegistrationRepo struct {
	mock.Mock
}

func (m *RegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *RegistrationRepo) GetAll(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	regs, _ := args.Get(0).([]domain.Registration)
	return regs, args.Error(1)
}

type RegistrationUseCase struct {
	mock.Mock
}

func (m *RegistrationUseCase) Register(ctx context.Context, doc domain.Document) (*domain.Registration, error) {
	args := m.Called(ctx, doc)
	reg, _ := args.Get(0).(*domain.Registration)
	return reg, args.Error(1)
}

func (m *RegistrationUseCase) GetAllRegistrations(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	regs, _ := args.Get(0).([]domain.Registration)
	return regs, args.Error(1)
}

type RegistrationCache struct {
	mock.Mock
}

func (m *RegistrationCache) GetAll(ctx context.Context) ([]domain.Registration, bool, error) {
	args := m.Called(ctx)
	regs, _ := args.Get(0).([]domain.Registration)
	return regs, args.Bool(1), args.Error(2)
}

func (m *RegistrationCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	gen, _ := args.Get(0).(int64)
	return gen, args.Error(1)
}

func (m *RegistrationCache) SetAll(ctx context.Context, gen int64, regs []domain.Registration) error {
	args := m.Called(ctx, gen, regs)
	return args.Error(0)
}

func (m *RegistrationCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type RegistrationEvents struct {
	mock.Mock
}

func (m *RegistrationEvents) Registered(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
