package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/metrics"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type OrganizationRepository interface {
	OrganizationByINN(ctx context.Context, inn string) (*model.Organization, error)
}

type PaymentRepository interface {
	OperationExists(ctx context.Context, operationID uuid.UUID) (bool, error)
	DocumentOwner(ctx context.Context, documentNumber string) (uuid.UUID, bool, error)
	Credit(ctx context.Context, params model.CreditParams) (*model.CreditResult, error)
	PaymentsByPayer(ctx context.Context, payerID int64, page model.Page) ([]model.Payment, error)
	BalanceLogsByOrganization(ctx context.Context, orgID int64, page model.Page) ([]model.BalanceLog, error)
}

type BalanceCache interface {
	Delete(ctx context.Context, inn string) error
}

type BalanceCreditedSender interface {
	SendBalanceCredited(ctx context.Context, event model.BalanceCredited) error
}

type service struct {
	organizations  OrganizationRepository
	payments       PaymentRepository
	cache          BalanceCache
	sender         BalanceCreditedSender
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewPaymentService(
	organizations OrganizationRepository,
	payments PaymentRepository,
	cache BalanceCache,
	sender BalanceCreditedSender,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		organizations:  organizations,
		payments:       payments,
		cache:          cache,
		sender:         sender,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// ProcessWebhook credits the payer of a bank notification. A repeated
// operation_id is reported as ProcessStatusDuplicate and changes nothing.
func (svc *service) ProcessWebhook(
	ctx context.Context,
	req model.WebhookRequest,
) (*model.ProcessResult, error) {
	const op string = "payment.service.ProcessWebhook"
	log := logger.With(
		logger.String("operation_id", req.OperationID),
		logger.String("payer_inn", req.PayerINN),
		logger.String("document_number", req.DocumentNumber),
	)

	wh, err := req.Validate()
	if err != nil {
		log.Warn(ctx, "invalid webhook", logger.ErrorF(err))
		metrics.IncWebhook(metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	seen, err := svc.payments.OperationExists(rdbCtx, wh.OperationID)
	if err != nil {
		log.Error(ctx, "repository operation exists", logger.ErrorF(err))
		metrics.IncWebhook(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if seen {
		log.Info(ctx, "duplicate webhook ignored")
		metrics.IncWebhook(metrics.OutcomeDuplicate)
		return &model.ProcessResult{Status: model.ProcessStatusDuplicate}, nil
	}

	org, err := svc.organizations.OrganizationByINN(rdbCtx, wh.PayerINN)
	if err != nil {
		if errors.Is(err, model.ErrOrganizationNotFound) {
			log.Warn(ctx, "payer organization not found")
			metrics.IncWebhook(metrics.OutcomeUnknownPayer)
		} else {
			log.Error(ctx, "repository organization by inn", logger.ErrorF(err))
			metrics.IncWebhook(metrics.OutcomeFailed)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	owner, taken, err := svc.payments.DocumentOwner(rdbCtx, wh.DocumentNumber)
	if err != nil {
		log.Error(ctx, "repository document owner", logger.ErrorF(err))
		metrics.IncWebhook(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		if owner == wh.OperationID {
			log.Info(ctx, "duplicate webhook ignored, committed concurrently")
			metrics.IncWebhook(metrics.OutcomeDuplicate)
			return &model.ProcessResult{Status: model.ProcessStatusDuplicate}, nil
		}
		log.Warn(ctx, "duplicate document number", logger.String("owner_operation_id", owner.String()))
		metrics.IncWebhook(metrics.OutcomeDuplicateDocument)
		return nil, fmt.Errorf("%s: %w", op, model.ErrDuplicateDocument)
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	res, err := svc.payments.Credit(wdbCtx, model.CreditParams{
		OrganizationID: org.ID,
		OperationID:    wh.OperationID,
		Amount:         wh.Amount,
		DocumentNumber: wh.DocumentNumber,
		DocumentDate:   wh.DocumentDate,
	})
	switch {
	case errors.Is(err, model.ErrDuplicateOperation):
		log.Info(ctx, "concurrent duplicate webhook ignored")
		metrics.IncWebhook(metrics.OutcomeDuplicate)
		return &model.ProcessResult{Status: model.ProcessStatusDuplicate}, nil
	case errors.Is(err, model.ErrDuplicateDocument):
		sameOp, ownerErr := svc.documentOwnedBy(ctx, wh.DocumentNumber, wh.OperationID)
		if ownerErr != nil {
			log.Error(ctx, "repository document owner", logger.ErrorF(ownerErr))
			metrics.IncWebhook(metrics.OutcomeFailed)
			return nil, fmt.Errorf("%s: %w", op, ownerErr)
		}
		if sameOp {
			log.Info(ctx, "concurrent duplicate webhook ignored")
			metrics.IncWebhook(metrics.OutcomeDuplicate)
			return &model.ProcessResult{Status: model.ProcessStatusDuplicate}, nil
		}
		log.Warn(ctx, "concurrent duplicate document number")
		metrics.IncWebhook(metrics.OutcomeDuplicateDocument)
		return nil, fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, model.ErrBalanceOverflow):
		log.Error(ctx, "credit would overflow balance", logger.ErrorF(err))
		metrics.IncWebhook(metrics.OutcomeBalanceOverflow)
		return nil, fmt.Errorf("%s: %w", op, err)
	case err != nil:
		log.Error(ctx, "repository credit", logger.ErrorF(err))
		metrics.IncWebhook(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "payment credited",
		logger.Int64("payment_id", res.PaymentID),
		logger.String("amount", wh.Amount.StringFixed(model.AmountDecimalPlaces)),
		logger.String("balance", res.Balance.StringFixed(model.AmountDecimalPlaces)),
	)
	metrics.IncWebhook(metrics.OutcomeCreated)

	svc.afterCredit(ctx, org, wh, res)

	return &model.ProcessResult{
		Status:    model.ProcessStatusCreated,
		PaymentID: res.PaymentID,
		Balance:   res.Balance,
	}, nil
}

// documentOwnedBy reports whether documentNumber is recorded under operationID.
func (svc *service) documentOwnedBy(ctx context.Context, documentNumber string, operationID uuid.UUID) (bool, error) {
	rdbCtx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	owner, taken, err := svc.payments.DocumentOwner(rdbCtx, documentNumber)
	if err != nil {
		return false, err
	}
	return taken && owner == operationID, nil
}

// afterCredit runs once the transaction is committed. Failures here are
// logged and never returned.
func (svc *service) afterCredit(
	ctx context.Context,
	org *model.Organization,
	wh model.Webhook,
	res *model.CreditResult,
) {
	log := logger.With(
		logger.String("operation_id", wh.OperationID.String()),
		logger.String("payer_inn", org.INN),
	)

	if err := svc.cache.Delete(ctx, org.INN); err != nil {
		log.Warn(ctx, "balance cache invalidate", logger.ErrorF(err))
	}

	err := svc.sender.SendBalanceCredited(ctx, model.BalanceCredited{
		EventID:        uuid.New(),
		OperationID:    wh.OperationID,
		INN:            org.INN,
		Amount:         wh.Amount,
		Balance:        res.Balance,
		DocumentNumber: wh.DocumentNumber,
		DocumentDate:   wh.DocumentDate,
		CreditedAt:     res.CreatedAt,
	})
	if err != nil {
		log.Warn(ctx, "send balance credited", logger.ErrorF(err))
	}
}

func (svc *service) PaymentsByINN(ctx context.Context, inn string, page model.Page) ([]model.Payment, error) {
	const op string = "payment.service.PaymentsByINN"
	log := logger.With(logger.String("inn", inn))

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	org, err := svc.organizationByINN(ctx, inn)
	if err != nil {
		log.Warn(ctx, "organization by inn", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payments, err := svc.payments.PaymentsByPayer(ctx, org.ID, page.Normalize())
	if err != nil {
		log.Error(ctx, "repository payments by payer", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payments, nil
}

func (svc *service) BalanceLogsByINN(ctx context.Context, inn string, page model.Page) ([]model.BalanceLog, error) {
	const op string = "payment.service.BalanceLogsByINN"
	log := logger.With(logger.String("inn", inn))

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	org, err := svc.organizationByINN(ctx, inn)
	if err != nil {
		log.Warn(ctx, "organization by inn", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logs, err := svc.payments.BalanceLogsByOrganization(ctx, org.ID, page.Normalize())
	if err != nil {
		log.Error(ctx, "repository balance logs by organization", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}

func (svc *service) organizationByINN(ctx context.Context, inn string) (*model.Organization, error) {
	if !model.ValidINN(inn) {
		return nil, model.ErrOrganizationNotFound
	}
	return svc.organizations.OrganizationByINN(ctx, inn)
}
