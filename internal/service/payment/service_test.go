package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/service/mocks"
	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

type deps struct {
	organizations *mocks.MockOrganizationRepository
	payments      *mocks.MockPaymentRepository
	cache         *mocks.MockBalanceCache
	sender        *mocks.MockBalanceCreditedSender
}

func newDeps(t *testing.T) deps {
	return deps{
		organizations: mocks.NewMockOrganizationRepository(t),
		payments:      mocks.NewMockPaymentRepository(t),
		cache:         mocks.NewMockBalanceCache(t),
		sender:        mocks.NewMockBalanceCreditedSender(t),
	}
}

func newSvc(d deps) *service {
	return NewPaymentService(d.organizations, d.payments, d.cache, d.sender, time.Second, time.Second)
}

func TestServiceProcessWebhook(t *testing.T) {
	t.Parallel()

	opID := uuid.New()
	otherOpID := uuid.New()
	inn := "1234567890"
	docNum := "DOC-" + gofakeit.DigitN(6)
	org := &model.Organization{ID: gofakeit.Int64(), INN: inn, Balance: decimal.RequireFromString("100.00")}
	creditedAt := time.Now().UTC()

	req := model.WebhookRequest{
		OperationID:    opID.String(),
		Amount:         "1500.50",
		PayerINN:       inn,
		DocumentNumber: docNum,
		DocumentDate:   "2024-04-27T21:00:00Z",
	}

	wantCredit := model.CreditParams{
		OrganizationID: org.ID,
		OperationID:    opID,
		Amount:         decimal.RequireFromString("1500.50"),
		DocumentNumber: docNum,
		DocumentDate:   time.Date(2024, 4, 27, 21, 0, 0, 0, time.UTC),
	}
	matchCredit := mock.MatchedBy(func(p model.CreditParams) bool {
		return p.OrganizationID == wantCredit.OrganizationID &&
			p.OperationID == wantCredit.OperationID &&
			p.Amount.Equal(wantCredit.Amount) &&
			p.DocumentNumber == wantCredit.DocumentNumber &&
			p.DocumentDate.Equal(wantCredit.DocumentDate)
	})

	type testCase struct {
		name   string
		req    model.WebhookRequest
		setup  func(d deps)
		assert func(t *testing.T, res *model.ProcessResult, err error, d deps)
	}

	tests := []testCase{
		{
			name:  "validation error: nothing touches storage",
			req:   model.WebhookRequest{OperationID: "nope", PayerINN: inn},
			setup: func(d deps) {
				// No calls expected.
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)

				var verr *model.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Details, "operation_id")
				assert.Contains(t, verr.Details, "amount")

				d.payments.AssertNotCalled(t, "OperationExists", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "duplicate operation id: success without credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(true, nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusDuplicate, res.Status)

				d.organizations.AssertNotCalled(t, "OrganizationByINN", mock.Anything, mock.Anything)
				d.payments.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "organization not found",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(nil, model.ErrOrganizationNotFound).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrOrganizationNotFound)
				assert.Nil(t, res)

				d.payments.AssertNotCalled(t, "DocumentOwner", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "duplicate document number",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(otherOpID, true, nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDuplicateDocument)
				assert.Nil(t, res)

				d.payments.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "same operation committed between checks: success without credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(opID, true, nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusDuplicate, res.Status)

				d.payments.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "document owner lookup fails",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, model.ErrDatabase).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDatabase)
				assert.Nil(t, res)
			},
		},
		{
			name:  "operation exists check fails",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, errors.New("conn refused")).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "conn refused")
				assert.Nil(t, res)
			},
		},
		{
			name:  "credited: cache invalidated and event sent",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(&model.CreditResult{
					PaymentID: 42,
					Balance:   decimal.RequireFromString("1600.50"),
					CreatedAt: creditedAt,
				}, nil).Once()
				d.cache.On("Delete", mock.Anything, inn).Return(nil).Once()
				d.sender.On("SendBalanceCredited", mock.Anything, mock.MatchedBy(func(e model.BalanceCredited) bool {
					return e.OperationID == opID &&
						e.INN == inn &&
						e.EventID != uuid.Nil &&
						e.Balance.Equal(decimal.RequireFromString("1600.50")) &&
						e.CreditedAt.Equal(creditedAt)
				})).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusCreated, res.Status)
				assert.Equal(t, int64(42), res.PaymentID)
				assert.Equal(t, "1600.50", res.Balance.StringFixed(2))
			},
		},
		{
			name:  "credited even when cache and kafka fail",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(&model.CreditResult{
					PaymentID: 43,
					Balance:   decimal.RequireFromString("1600.50"),
					CreatedAt: creditedAt,
				}, nil).Once()
				d.cache.On("Delete", mock.Anything, inn).Return(errors.New("redis down")).Once()
				d.sender.On("SendBalanceCredited", mock.Anything, mock.Anything).Return(errors.New("breaker open")).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusCreated, res.Status)
			},
		},
		{
			name:  "concurrent duplicate operation during credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(nil, model.ErrDuplicateOperation).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusDuplicate, res.Status)

				d.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				d.sender.AssertNotCalled(t, "SendBalanceCredited", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "concurrent duplicate document during credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(nil, model.ErrDuplicateDocument).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(otherOpID, true, nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDuplicateDocument)
				assert.Nil(t, res)
			},
		},
		{
			name:  "same operation wins the document constraint during credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(nil, model.ErrDuplicateDocument).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(opID, true, nil).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.ProcessStatusDuplicate, res.Status)

				d.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				d.sender.AssertNotCalled(t, "SendBalanceCredited", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "credit overflows balance",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(nil, model.ErrBalanceOverflow).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrBalanceOverflow)
				assert.NotErrorIs(t, err, model.ErrDatabase)
				assert.Nil(t, res)

				d.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "database error during credit",
			req:   req,
			setup: func(d deps) {
				d.payments.On("OperationExists", mock.Anything, opID).Return(false, nil).Once()
				d.organizations.On("OrganizationByINN", mock.Anything, inn).Return(org, nil).Once()
				d.payments.On("DocumentOwner", mock.Anything, docNum).Return(uuid.Nil, false, nil).Once()
				d.payments.On("Credit", mock.Anything, matchCredit).Return(nil, model.ErrDatabase).Once()
			},
			assert: func(t *testing.T, res *model.ProcessResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDatabase)
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)

			res, err := newSvc(d).ProcessWebhook(context.Background(), tt.req)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServicePaymentsByINN(t *testing.T) {
	t.Parallel()

	t.Run("malformed inn is not found without storage", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		_, err := newSvc(d).PaymentsByINN(context.Background(), "12", model.Page{})
		assert.ErrorIs(t, err, model.ErrOrganizationNotFound)
	})

	t.Run("lists with normalized page", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		org := &model.Organization{ID: 7, INN: "123456789012"}
		want := []model.Payment{{ID: 1, PayerID: 7, PayerINN: org.INN}}

		d.organizations.On("OrganizationByINN", mock.Anything, org.INN).Return(org, nil).Once()
		d.payments.On("PaymentsByPayer", mock.Anything, int64(7), model.Page{Limit: model.DefaultPageLimit}).
			Return(want, nil).Once()

		got, err := newSvc(d).PaymentsByINN(context.Background(), org.INN, model.Page{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestServiceBalanceLogsByINN(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	org := &model.Organization{ID: 9, INN: "1234567890"}
	page := model.Page{Limit: 10, Offset: 20}

	d.organizations.On("OrganizationByINN", mock.Anything, org.INN).Return(org, nil).Once()
	d.payments.On("BalanceLogsByOrganization", mock.Anything, int64(9), page).
		Return(nil, errors.New("timeout")).Once()

	_, err := newSvc(d).BalanceLogsByINN(context.Background(), org.INN, page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment.service.BalanceLogsByINN")
}
