package converter

import (
	"time"

	"github.com/samber/lo"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

type BalanceResponse struct {
	INN     string `json:"inn"`
	Balance string `json:"balance"`
}

type OrganizationResponse struct {
	ID        int64     `json:"id"`
	INN       string    `json:"inn"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateOrganizationRequest struct {
	INN string `json:"inn"`
}

type PaymentResponse struct {
	ID             int64     `json:"id"`
	OperationID    string    `json:"operation_id"`
	Amount         string    `json:"amount"`
	PayerINN       string    `json:"payer_inn"`
	DocumentNumber string    `json:"document_number"`
	DocumentDate   time.Time `json:"document_date"`
	CreatedAt      time.Time `json:"created_at"`
}

type BalanceLogResponse struct {
	ID            int64     `json:"id"`
	PaymentID     int64     `json:"payment_id"`
	OperationID   string    `json:"operation_id"`
	AmountChanged string    `json:"amount_changed"`
	Timestamp     time.Time `json:"timestamp"`
}

type ListResponse[T any] struct {
	Limit   uint64 `json:"limit"`
	Offset  uint64 `json:"offset"`
	Results []T    `json:"results"`
}

func OrganizationToBalanceResponse(org *model.Organization) BalanceResponse {
	return BalanceResponse{
		INN:     org.INN,
		Balance: org.Balance.StringFixed(model.AmountDecimalPlaces),
	}
}

func OrganizationToResponse(org *model.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		INN:       org.INN,
		Balance:   org.Balance.StringFixed(model.AmountDecimalPlaces),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

func OrganizationsToResponse(orgs []model.Organization, page model.Page) ListResponse[OrganizationResponse] {
	res := lo.Map(orgs, func(o model.Organization, _ int) OrganizationResponse {
		return OrganizationToResponse(&o)
	})
	return ListResponse[OrganizationResponse]{Limit: page.Limit, Offset: page.Offset, Results: res}
}

func PaymentsToResponse(payments []model.Payment, page model.Page) ListResponse[PaymentResponse] {
	res := lo.Map(payments, func(p model.Payment, _ int) PaymentResponse {
		return PaymentResponse{
			ID:             p.ID,
			OperationID:    p.OperationID.String(),
			Amount:         p.Amount.StringFixed(model.AmountDecimalPlaces),
			PayerINN:       p.PayerINN,
			DocumentNumber: p.DocumentNumber,
			DocumentDate:   p.DocumentDate,
			CreatedAt:      p.CreatedAt,
		}
	})
	return ListResponse[PaymentResponse]{Limit: page.Limit, Offset: page.Offset, Results: res}
}

func BalanceLogsToResponse(logs []model.BalanceLog, page model.Page) ListResponse[BalanceLogResponse] {
	res := lo.Map(logs, func(l model.BalanceLog, _ int) BalanceLogResponse {
		return BalanceLogResponse{
			ID:            l.ID,
			PaymentID:     l.PaymentID,
			OperationID:   l.OperationID.String(),
			AmountChanged: l.AmountChanged.StringFixed(model.AmountDecimalPlaces),
			Timestamp:     l.Timestamp,
		}
	})
	return ListResponse[BalanceLogResponse]{Limit: page.Limit, Offset: page.Offset, Results: res}
}
