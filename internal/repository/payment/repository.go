package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/pgerr"
)

const (
	tablePayments      = "payments"
	tableOrganizations = "organizations"
	tableBalanceLogs   = "balance_logs"

	constraintOperationIDKey    = "payments_operation_id_key"
	constraintDocumentNumberKey = "payments_document_number_key"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPaymentRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) OperationExists(ctx context.Context, operationID uuid.UUID) (bool, error) {
	return r.exists(ctx, sq.Eq{"operation_id": operationID})
}

// DocumentOwner returns the operation_id of the payment holding documentNumber.
func (r *repository) DocumentOwner(ctx context.Context, documentNumber string) (uuid.UUID, bool, error) {
	sqlStr, args, err := r.sb.
		Select("operation_id").
		From(tablePayments).
		Where(sq.Eq{"document_number": documentNumber}).
		ToSql()
	if err != nil {
		return uuid.Nil, false, err
	}

	var owner uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}
	return owner, true, nil
}

func (r *repository) exists(ctx context.Context, pred sq.Eq) (bool, error) {
	sub, subArgs, err := sq.Select("1").From(tablePayments).Where(pred).ToSql()
	if err != nil {
		return false, err
	}

	sqlStr, args, err := r.sb.Select().Column(sq.Expr("EXISTS ("+sub+")", subArgs...)).ToSql()
	if err != nil {
		return false, err
	}

	var ok bool
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}
	return ok, nil
}

// Credit records the payment, adds its amount to the payer balance and
// writes the balance log in a single transaction.
func (r *repository) Credit(ctx context.Context, params model.CreditParams) (*model.CreditResult, error) {
	var res model.CreditResult

	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		insertPayment := r.sb.
			Insert(tablePayments).
			Columns("operation_id", "amount", "payer_id", "document_number", "document_date").
			Values(params.OperationID, params.Amount, params.OrganizationID, params.DocumentNumber, params.DocumentDate).
			Suffix("RETURNING id, created_at")

		sqlStr, args, err := insertPayment.ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&res.PaymentID, &res.CreatedAt); err != nil {
			return err
		}

		updateBalance := r.sb.
			Update(tableOrganizations).
			Set("balance", sq.Expr("balance + ?", params.Amount)).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": params.OrganizationID}).
			Suffix("RETURNING balance")

		sqlStr, args, err = updateBalance.ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&res.Balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrOrganizationNotFound
			}
			return err
		}

		insertLog := r.sb.
			Insert(tableBalanceLogs).
			Columns("organization_id", "payment_id", "amount_changed").
			Values(params.OrganizationID, res.PaymentID, params.Amount)

		sqlStr, args, err = insertLog.ToSql()
		if err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() != 1 {
			return fmt.Errorf("%w: balance log not written", model.ErrDatabase)
		}

		return nil
	})
	if err != nil {
		return nil, mapCreditError(err)
	}

	return &res, nil
}

func mapCreditError(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err, constraintOperationIDKey):
		return model.ErrDuplicateOperation
	case pgerr.IsUniqueViolation(err, constraintDocumentNumberKey):
		return model.ErrDuplicateDocument
	case pgerr.IsNumericOverflow(err):
		return fmt.Errorf("%w: %v", model.ErrBalanceOverflow, err)
	}

	if pgErr, ok := pgerr.As(err); ok {
		if pgErr.Code == pgerr.CodeForeignKeyViolation {
			return model.ErrOrganizationNotFound
		}
		return fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}

	return err
}

func (r *repository) PaymentsByPayer(ctx context.Context, payerID int64, page model.Page) ([]model.Payment, error) {
	page = page.Normalize()

	q := r.sb.
		Select("p.id", "p.operation_id", "p.amount", "p.payer_id", "o.inn", "p.document_number", "p.document_date", "p.created_at").
		From(tablePayments + " p").
		Join(tableOrganizations + " o ON o.id = p.payer_id").
		Where(sq.Eq{"p.payer_id": payerID}).
		OrderBy("p.document_date DESC", "p.id DESC").
		Limit(page.Limit).
		Offset(page.Offset)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}
	defer rows.Close()

	payments := make([]model.Payment, 0, page.Limit)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(
			&p.ID,
			&p.OperationID,
			&p.Amount,
			&p.PayerID,
			&p.PayerINN,
			&p.DocumentNumber,
			&p.DocumentDate,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *repository) BalanceLogsByOrganization(ctx context.Context, orgID int64, page model.Page) ([]model.BalanceLog, error) {
	page = page.Normalize()

	q := r.sb.
		Select("l.id", "l.organization_id", "l.payment_id", "p.operation_id", "l.amount_changed", `l."timestamp"`).
		From(tableBalanceLogs + " l").
		Join(tablePayments + " p ON p.id = l.payment_id").
		Where(sq.Eq{"l.organization_id": orgID}).
		OrderBy(`l."timestamp" DESC`, "l.id DESC").
		Limit(page.Limit).
		Offset(page.Offset)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}
	defer rows.Close()

	logs := make([]model.BalanceLog, 0, page.Limit)
	for rows.Next() {
		var l model.BalanceLog
		if err := rows.Scan(
			&l.ID,
			&l.OrganizationID,
			&l.PaymentID,
			&l.OperationID,
			&l.AmountChanged,
			&l.Timestamp,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
