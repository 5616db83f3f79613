package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
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
	payments      *mocks.MockPaymentService
	organizations *mocks.MockOrganizationService
}

func newRouter(t *testing.T) (chi.Router, deps) {
	t.Helper()

	d := deps{
		payments:      mocks.NewMockPaymentService(t),
		organizations: mocks.NewMockOrganizationService(t),
	}
	r := chi.NewRouter()
	NewPaymentsHandler(d.payments, d.organizations).Register(r)
	return r, d
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

const webhookBody = `{
	"operation_id": "ccf0a86d-041b-4991-bcf7-e2352f7b8a4a",
	"amount": 145000,
	"payer_inn": "1234567890",
	"document_number": "PAY-328",
	"document_date": "2024-04-27T21:00:00Z"
}`

func TestBankWebhook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		setup    func(d deps)
		wantCode int
		wantBody map[string]any
	}{
		{
			name:  "created",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, model.WebhookRequest{
					OperationID:    "ccf0a86d-041b-4991-bcf7-e2352f7b8a4a",
					Amount:         "145000",
					PayerINN:       "1234567890",
					DocumentNumber: "PAY-328",
					DocumentDate:   "2024-04-27T21:00:00Z",
				}).Return(&model.ProcessResult{Status: model.ProcessStatusCreated}, nil).Once()
			},
			wantCode: http.StatusCreated,
			wantBody: map[string]any{"status": "success"},
		},
		{
			name:  "duplicate",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(&model.ProcessResult{Status: model.ProcessStatusDuplicate}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: map[string]any{"status": "success"},
		},
		{
			name:     "malformed json",
			body:     `{"operation_id": `,
			setup:    func(d deps) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "field errors",
			body:  webhookBody,
			setup: func(d deps) {
				verr := model.NewValidationError()
				verr.Add("amount", "Ensure this value is greater than or equal to 0.01.")
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).Return(nil, verr).Once()
			},
			wantCode: http.StatusBadRequest,
			wantBody: map[string]any{
				"error":   "invalid data format",
				"details": map[string]any{
					"amount": []any{"Ensure this value is greater than or equal to 0.01."},
				},
			},
		},
		{
			name:  "organization not found",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(nil, model.ErrOrganizationNotFound).Once()
			},
			wantCode: http.StatusNotFound,
			wantBody: map[string]any{"error": "organization not found"},
		},
		{
			name:  "duplicate document",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(nil, model.ErrDuplicateDocument).Once()
			},
			wantCode: http.StatusBadRequest,
			wantBody: map[string]any{"error": "document number must be unique"},
		},
		{
			name:  "database error",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(nil, model.ErrDatabase).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "database error"},
		},
		{
			name:  "balance overflow",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(nil, model.ErrBalanceOverflow).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "balance limit exceeded"},
		},
		{
			name:  "unexpected error",
			body:  webhookBody,
			setup: func(d deps) {
				d.payments.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(nil, assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]any{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, d := newRouter(t)
			tt.setup(d)

			rec := do(r, http.MethodPost, "/api/webhook/bank/", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			got := decode(t, rec)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, got)
			} else {
				assert.Equal(t, "invalid data format", got["error"])
			}
		})
	}
}

func TestBalance(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		d.organizations.On("Balance", mock.Anything, "1234567890").Return(&model.Organization{
			INN:     "1234567890",
			Balance: decimal.RequireFromString("145000"),
		}, nil).Once()

		rec := do(r, http.MethodGet, "/api/organizations/1234567890/balance/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"inn": "1234567890", "balance": "145000.00"}, decode(t, rec))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		d.organizations.On("Balance", mock.Anything, "0000000000").Return(nil, model.ErrOrganizationNotFound).Once()

		rec := do(r, http.MethodGet, "/api/organizations/0000000000/balance/", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"error": "organization not found"}, decode(t, rec))
	})
}

func TestCreateOrganization(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		now := time.Now().UTC()
		d.organizations.On("Create", mock.Anything, model.CreateOrganizationParams{INN: "123456789012"}).
			Return(&model.Organization{ID: 1, INN: "123456789012", CreatedAt: now, UpdatedAt: now}, nil).Once()

		rec := do(r, http.MethodPost, "/api/organizations/", `{"inn":"123456789012"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		got := decode(t, rec)
		assert.Equal(t, "123456789012", got["inn"])
		assert.Equal(t, "0.00", got["balance"])
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		d.organizations.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrOrganizationConflict).Once()

		rec := do(r, http.MethodPost, "/api/organizations/", `{"inn":"123456789012"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		r, _ := newRouter(t)
		rec := do(r, http.MethodPost, "/api/organizations/", `[`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrganizations(t *testing.T) {
	t.Parallel()

	r, d := newRouter(t)
	d.organizations.On("List", mock.Anything, model.Page{Limit: 2}).Return([]model.Organization{
		{ID: 1, INN: "1234567890", Balance: decimal.RequireFromString("1")},
		{ID: 2, INN: "123456789012"},
	}, nil).Once()

	rec := do(r, http.MethodGet, "/api/organizations/?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	results := decode(t, rec)["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "1.00", results[0].(map[string]any)["balance"])
	assert.Equal(t, "123456789012", results[1].(map[string]any)["inn"])
}

func TestPayments(t *testing.T) {
	t.Parallel()

	t.Run("page echoed", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		opID := uuid.New()
		d.payments.On("PaymentsByINN", mock.Anything, "1234567890", model.Page{Limit: 500, Offset: 10}).
			Return([]model.Payment{{
				ID:          1,
				OperationID: opID,
				Amount:      decimal.RequireFromString("10.5"),
				PayerINN:    "1234567890",
			}}, nil).Once()

		rec := do(r, http.MethodGet, "/api/organizations/1234567890/payments/?limit=9999&offset=10", "")
		require.Equal(t, http.StatusOK, rec.Code)

		got := decode(t, rec)
		assert.EqualValues(t, 500, got["limit"])
		assert.EqualValues(t, 10, got["offset"])

		results := got["results"].([]any)
		require.Len(t, results, 1)
		assert.Equal(t, "10.50", results[0].(map[string]any)["amount"])
		assert.Equal(t, opID.String(), results[0].(map[string]any)["operation_id"])
	})

	t.Run("bad limit", func(t *testing.T) {
		t.Parallel()

		r, _ := newRouter(t)
		rec := do(r, http.MethodGet, "/api/organizations/1234567890/payments/?limit=-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["details"], "limit")
	})

	t.Run("offset beyond bigint", func(t *testing.T) {
		t.Parallel()

		r, _ := newRouter(t)
		rec := do(r, http.MethodGet, "/api/organizations/1234567890/payments/?offset=9223372036854775808", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["details"], "offset")
	})

	t.Run("largest bigint offset accepted", func(t *testing.T) {
		t.Parallel()

		r, d := newRouter(t)
		page := model.Page{Limit: model.DefaultPageLimit, Offset: math.MaxInt64}
		d.payments.On("PaymentsByINN", mock.Anything, "1234567890", page).Return(nil, nil).Once()

		rec := do(r, http.MethodGet, "/api/organizations/1234567890/payments/?offset=9223372036854775807", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBalanceLogs(t *testing.T) {
	t.Parallel()

	r, d := newRouter(t)
	d.payments.On("BalanceLogsByINN", mock.Anything, "1234567890", model.Page{Limit: model.DefaultPageLimit}).
		Return(nil, model.ErrOrganizationNotFound).Once()

	rec := do(r, http.MethodGet, "/api/organizations/1234567890/balance-logs/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
