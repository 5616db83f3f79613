package converter

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

type balanceCreditedRecord struct {
	EventID        string    `json:"event_id"`
	OperationID    string    `json:"operation_id"`
	INN            string    `json:"inn"`
	Amount         string    `json:"amount"`
	Balance        string    `json:"balance"`
	DocumentNumber string    `json:"document_number"`
	DocumentDate   time.Time `json:"document_date"`
	CreditedAt     time.Time `json:"credited_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) BalanceCreditedToPayload(e model.BalanceCredited) ([]byte, error) {
	payload, err := sonic.Marshal(balanceCreditedRecord{
		EventID:        e.EventID.String(),
		OperationID:    e.OperationID.String(),
		INN:            e.INN,
		Amount:         e.Amount.StringFixed(model.AmountDecimalPlaces),
		Balance:        e.Balance.StringFixed(model.AmountDecimalPlaces),
		DocumentNumber: e.DocumentNumber,
		DocumentDate:   e.DocumentDate.UTC(),
		CreditedAt:     e.CreditedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balance credited: %w", err)
	}

	return payload, nil
}

// WebhookPayloadToRequest decodes a webhook delivered through Kafka. The
// payload has the same shape as the HTTP body.
func (c *kafkaConverter) WebhookPayloadToRequest(data []byte) (model.WebhookRequest, error) {
	return DecodeWebhook(data)
}
