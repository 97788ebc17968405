package usecase

import (
	"context"
	"studentportal/config"
	"studentportal/domain"
	"time"
)

type registrationUseCase struct {
	repo    domain.RegistrationRepo
	cache   domain.RegistrationCache
	events  domain.RegistrationEvents
	TimeOut time.Duration
}

// NewRegistrationUseCase wires the store with an optional list cache and event publisher; either may be nil.
func NewRegistrationUseCase(repo domain.RegistrationRepo, cache domain.RegistrationCache, events domain.RegistrationEvents, to time.Duration) domain.RegistrationUseCase {
	return &registrationUseCase{
		repo:    repo,
		cache:   cache,
		events:  events,
		TimeOut: to,
	}
}

func (ruc *registrationUseCase) Register(ctx context.Context, doc domain.Document) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, ruc.TimeOut)
	defer cancel()

	reg := domain.NewRegistration(doc)
	if err := ruc.repo.Create(ctx, reg); err != nil {
		return nil, err
	}

	// The insert already succeeded; cache and event failures are logged only.
	if ruc.cache != nil {
		if err := ruc.cache.Invalidate(ctx); err != nil {
			config.GetLogrusInstance().Warnf("Failed to invalidate registration cache: %v", err)
		}
	}
	if ruc.events != nil {
		if err := ruc.events.Registered(ctx, reg); err != nil {
			config.GetLogrusInstance().Warnf("Failed to publish registration %s: %v", reg.ID, err)
		}
	}

	return reg, nil
}

func (ruc *registrationUseCase) GetAllRegistrations(ctx context.Context) ([]domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, ruc.TimeOut)
	defer cancel()

	fill := false
	var gen int64
	if ruc.cache != nil {
		regs, ok, err := ruc.cache.GetAll(ctx)
		if err != nil {
			config.GetLogrusInstance().Warnf("Registration cache read failed, using store: %v", err)
		} else if ok {
			return regs, nil
		}

		// The generation must be read before the store query.
		if gen, err = ruc.cache.Generation(ctx); err != nil {
			config.GetLogrusInstance().Warnf("Registration cache generation unavailable, not filling: %v", err)
		} else {
			fill = true
		}
	}

	regs, err := ruc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if fill {
		if err := ruc.cache.SetAll(ctx, gen, regs); err != nil {
			config.GetLogrusInstance().Warnf("Failed to fill registration cache: %v", err)
		}
	}

	return regs, nil
}
