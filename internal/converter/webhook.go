package converter

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

// webhookJSON rejects strings that are not valid UTF-8.
var webhookJSON = sonic.Config{ValidateString: true}.Froze()

// WebhookBody is the JSON body a bank sends.
type WebhookBody struct {
	OperationID    flexString `json:"operation_id"`
	Amount         flexString `json:"amount"`
	PayerINN       flexString `json:"payer_inn"`
	DocumentNumber flexString `json:"document_number"`
	DocumentDate   flexString `json:"document_date"`
}

// flexString accepts a JSON string, number or null. Amounts and INNs are
// sent either way by different banks.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := webhookJSON.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*s = flexString(data)
	default:
		return fmt.Errorf("expected string or number, got %s", data)
	}
	return nil
}

// DecodeWebhook turns a raw body into a request. Only malformed JSON fails
// here; field rules are checked by model.WebhookRequest.Validate.
func DecodeWebhook(data []byte) (model.WebhookRequest, error) {
	var body WebhookBody
	if err := webhookJSON.Unmarshal(data, &body); err != nil {
		verr := model.NewValidationError()
		verr.Add("non_field_errors", "JSON parse error: "+err.Error())
		return model.WebhookRequest{}, verr
	}

	return model.WebhookRequest{
		OperationID:    string(body.OperationID),
		Amount:         string(body.Amount),
		PayerINN:       string(body.PayerINN),
		DocumentNumber: string(body.DocumentNumber),
		DocumentDate:   string(body.DocumentDate),
	}, nil
}
