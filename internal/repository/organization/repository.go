package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/pgerr"
)

const (
	tableOrganizations = "organizations"
	constraintINNKey   = "organizations_inn_key"
)

var organizationColumns = []string{"id", "inn", "balance", "created_at", "updated_at"}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewOrganizationRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, inn string) (*model.Organization, error) {
	q := r.sb.
		Insert(tableOrganizations).
		Columns("inn").
		Values(inn).
		Suffix("RETURNING id, inn, balance, created_at, updated_at")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	org, err := scanOrganization(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if pgerr.IsUniqueViolation(err, constraintINNKey) {
			return nil, model.ErrOrganizationConflict
		}
		if _, ok := pgerr.As(err); ok {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabase, err)
		}
		return nil, err
	}

	return org, nil
}

func (r *repository) OrganizationByINN(ctx context.Context, inn string) (*model.Organization, error) {
	q := r.sb.
		Select(organizationColumns...).
		From(tableOrganizations).
		Where(sq.Eq{"inn": inn})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	org, err := scanOrganization(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDatabase, err)
	}

	return org, nil
}

func (r *repository) List(ctx context.Context, page model.Page) ([]model.Organization, error) {
	page = page.Normalize()

	q := r.sb.
		Select(organizationColumns...).
		From(tableOrganizations).
		OrderBy("inn").
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

	orgs := make([]model.Organization, 0, page.Limit)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}

	return orgs, rows.Err()
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	if err := row.Scan(
		&org.ID,
		&org.INN,
		&org.Balance,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}
