package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/converter"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

const maxBodyBytes = 1 << 20

type PaymentService interface {
	ProcessWebhook(ctx context.Context, req model.WebhookRequest) (*model.ProcessResult, error)
	PaymentsByINN(ctx context.Context, inn string, page model.Page) ([]model.Payment, error)
	BalanceLogsByINN(ctx context.Context, inn string, page model.Page) ([]model.BalanceLog, error)
}

type OrganizationService interface {
	Balance(ctx context.Context, inn string) (*model.Organization, error)
	Create(ctx context.Context, params model.CreateOrganizationParams) (*model.Organization, error)
	List(ctx context.Context, page model.Page) ([]model.Organization, error)
}

type handler struct {
	payments      PaymentService
	organizations OrganizationService
}

func NewPaymentsHandler(payments PaymentService, organizations OrganizationService) *handler {
	return &handler{payments: payments, organizations: organizations}
}

// Register mounts the public API on r.
func (h *handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/webhook/bank/", h.BankWebhook)

		r.Get("/organizations/", h.Organizations)
		r.Post("/organizations/", h.CreateOrganization)
		r.Get("/organizations/{inn}/balance/", h.Balance)
		r.Get("/organizations/{inn}/payments/", h.Payments)
		r.Get("/organizations/{inn}/balance-logs/", h.BalanceLogs)
	})
}

func (h *handler) BankWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, mapErrorToWebhookRes(malformedBody(err)))
		return
	}

	req, err := converter.DecodeWebhook(body)
	if err != nil {
		writeError(w, r, mapErrorToWebhookRes(err))
		return
	}

	res, err := h.payments.ProcessWebhook(r.Context(), req)
	if err != nil {
		writeError(w, r, mapErrorToWebhookRes(err))
		return
	}

	status := http.StatusOK
	if res.Status == model.ProcessStatusCreated {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, statusResponse{Status: "success"})
}

func (h *handler) Balance(w http.ResponseWriter, r *http.Request) {
	org, err := h.organizations.Balance(r.Context(), chi.URLParam(r, "inn"))
	if err != nil {
		writeError(w, r, mapErrorToBalanceRes(err))
		return
	}

	writeJSON(w, r, http.StatusOK, converter.OrganizationToBalanceResponse(org))
}

func (h *handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, mapErrorToCreateOrganizationRes(malformedBody(err)))
		return
	}

	var req converter.CreateOrganizationRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, r, mapErrorToCreateOrganizationRes(malformedBody(err)))
		return
	}

	org, err := h.organizations.Create(r.Context(), model.CreateOrganizationParams{INN: req.INN})
	if err != nil {
		writeError(w, r, mapErrorToCreateOrganizationRes(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, converter.OrganizationToResponse(org))
}

func (h *handler) Organizations(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	orgs, err := h.organizations.List(r.Context(), page)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	writeJSON(w, r, http.StatusOK, converter.OrganizationsToResponse(orgs, page))
}

func (h *handler) Payments(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	payments, err := h.payments.PaymentsByINN(r.Context(), chi.URLParam(r, "inn"), page)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	writeJSON(w, r, http.StatusOK, converter.PaymentsToResponse(payments, page))
}

func (h *handler) BalanceLogs(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	logs, err := h.payments.BalanceLogsByINN(r.Context(), chi.URLParam(r, "inn"), page)
	if err != nil {
		writeError(w, r, mapErrorToListRes(err))
		return
	}

	writeJSON(w, r, http.StatusOK, converter.BalanceLogsToResponse(logs, page))
}

// pageFromQuery reads limit and offset. The returned page is normalized so
// the response echoes the bounds actually applied.
func pageFromQuery(r *http.Request) (model.Page, error) {
	verr := model.NewValidationError()
	q := r.URL.Query()

	var page model.Page
	for _, p := range []struct {
		name string
		dst  *uint64
	}{
		{"limit", &page.Limit},
		{"offset", &page.Offset},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		// 63 bits keeps the value inside postgres bigint.
		v, err := strconv.ParseUint(raw, 10, 63)
		switch {
		case errors.Is(err, strconv.ErrRange):
			verr.Add(p.name, "Ensure this value is less than or equal to 9223372036854775807.")
			continue
		case err != nil:
			verr.Add(p.name, "A valid non-negative integer is required.")
			continue
		}
		*p.dst = v
	}

	if err := verr.OrNil(); err != nil {
		return model.Page{}, err
	}
	return page.Normalize(), nil
}

func malformedBody(err error) error {
	verr := model.NewValidationError()
	verr.Add("non_field_errors", "JSON parse error: "+err.Error())
	return verr
}
