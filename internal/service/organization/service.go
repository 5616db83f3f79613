package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type OrganizationRepository interface {
	Create(ctx context.Context, inn string) (*model.Organization, error)
	OrganizationByINN(ctx context.Context, inn string) (*model.Organization, error)
	List(ctx context.Context, page model.Page) ([]model.Organization, error)
}

type BalanceCache interface {
	Get(ctx context.Context, inn string) (*model.Organization, error)
	Set(ctx context.Context, org *model.Organization) error
}

type service struct {
	repo           OrganizationRepository
	cache          BalanceCache
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewOrganizationService(
	repository OrganizationRepository,
	cache BalanceCache,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		cache:          cache,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Balance returns the organization with its current balance, served from
// the cache when possible.
func (svc *service) Balance(ctx context.Context, inn string) (*model.Organization, error) {
	const op string = "organization.service.Balance"
	log := logger.With(logger.String("inn", inn))

	if !model.ValidINN(inn) {
		log.Warn(ctx, "malformed inn")
		return nil, fmt.Errorf("%s: %w", op, model.ErrOrganizationNotFound)
	}

	org, err := svc.cache.Get(ctx, inn)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, model.ErrCacheMiss) {
		log.Warn(ctx, "balance cache get", logger.ErrorF(err))
	}

	rdbCtx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	org, err = svc.repo.OrganizationByINN(rdbCtx, inn)
	if err != nil {
		if errors.Is(err, model.ErrOrganizationNotFound) {
			log.Warn(ctx, "organization not found")
		} else {
			log.Error(ctx, "repository organization by inn", logger.ErrorF(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.cache.Set(ctx, org); err != nil {
		log.Warn(ctx, "balance cache set", logger.ErrorF(err))
	}

	return org, nil
}

func (svc *service) Create(
	ctx context.Context,
	params model.CreateOrganizationParams,
) (*model.Organization, error) {
	const op string = "organization.service.Create"
	log := logger.With(logger.String("inn", params.INN))

	if err := params.Validate(); err != nil {
		log.Warn(ctx, "invalid organization", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	org, err := svc.repo.Create(ctx, params.INN)
	if err != nil {
		log.Error(ctx, "repository create organization", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "organization created", logger.Int64("id", org.ID))
	return org, nil
}

func (svc *service) List(ctx context.Context, page model.Page) ([]model.Organization, error) {
	const op string = "organization.service.List"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	orgs, err := svc.repo.List(ctx, page.Normalize())
	if err != nil {
		logger.Error(ctx, "repository list organizations", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orgs, nil
}
