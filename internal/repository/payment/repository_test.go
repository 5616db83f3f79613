package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/repository/pgerr"
)

func TestMapCreditError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "operation id taken",
			err:  &pgconn.PgError{Code: pgerr.CodeUniqueViolation, ConstraintName: constraintOperationIDKey},
			want: model.ErrDuplicateOperation,
		},
		{
			name: "document number taken",
			err:  &pgconn.PgError{Code: pgerr.CodeUniqueViolation, ConstraintName: constraintDocumentNumberKey},
			want: model.ErrDuplicateDocument,
		},
		{
			name: "balance column overflow",
			err:  &pgconn.PgError{Code: pgerr.CodeNumericOverflow, Message: "numeric field overflow"},
			want: model.ErrBalanceOverflow,
		},
		{
			name: "payer removed",
			err:  &pgconn.PgError{Code: pgerr.CodeForeignKeyViolation},
			want: model.ErrOrganizationNotFound,
		},
		{
			name: "other postgres error",
			err:  &pgconn.PgError{Code: "40P01"},
			want: model.ErrDatabase,
		},
		{
			name: "domain error passes through",
			err:  model.ErrOrganizationNotFound,
			want: model.ErrOrganizationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapCreditError(tt.err)
			assert.True(t, errors.Is(got, tt.want), "got %v", got)
		})
	}
}
