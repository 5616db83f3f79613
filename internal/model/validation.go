package model

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	AmountMaxDigits      = 15
	AmountDecimalPlaces  = 2
	DocumentNumberMaxLen = 50
	INNMaxLen            = 12

	msgRequired = "This field is required."
)

var MinAmount = decimal.New(1, -AmountDecimalPlaces)

var documentDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ValidationError collects messages per input field.
type ValidationError struct {
	Details map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Details: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Details[field] = append(e.Details[field], msg)
}

func (e *ValidationError) Empty() bool { return len(e.Details) == 0 }

// OrNil returns nil when nothing was collected so callers can
// `return verr.OrNil()` without a typed-nil error.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := lo.Keys(e.Details)
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, f := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Details[f], " "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate parses r into a Webhook, reporting every bad field at once.
func (r WebhookRequest) Validate() (Webhook, error) {
	var wh Webhook
	verr := NewValidationError()

	if opID := strings.TrimSpace(r.OperationID); opID == "" {
		verr.Add("operation_id", msgRequired)
	} else if id, err := uuid.Parse(opID); err != nil {
		verr.Add("operation_id", "Must be a valid UUID.")
	} else {
		wh.OperationID = id
	}

	if amount, ok := validateAmount(verr, "amount", r.Amount); ok {
		wh.Amount = amount
	}

	inn := strings.TrimSpace(r.PayerINN)
	if validateINN(verr, "payer_inn", inn) {
		wh.PayerINN = inn
	}

	docNum := strings.TrimSpace(r.DocumentNumber)
	switch {
	case docNum == "":
		verr.Add("document_number", msgRequired)
	case !utf8.ValidString(docNum):
		verr.Add("document_number", "Ensure this field contains valid UTF-8 text.")
	case strings.ContainsRune(docNum, 0):
		verr.Add("document_number", "Null characters are not allowed.")
	case utf8.RuneCountInString(docNum) > DocumentNumberMaxLen:
		verr.Add("document_number", "Ensure this field has no more than 50 characters.")
	default:
		wh.DocumentNumber = docNum
	}

	if date := strings.TrimSpace(r.DocumentDate); date == "" {
		verr.Add("document_date", msgRequired)
	} else if t, ok := parseDocumentDate(date); !ok {
		verr.Add("document_date", "Datetime has wrong format. Use ISO 8601.")
	} else {
		wh.DocumentDate = t
	}

	if err := verr.OrNil(); err != nil {
		return Webhook{}, err
	}
	return wh, nil
}

func validateINN(verr *ValidationError, field, inn string) bool {
	switch {
	case inn == "":
		verr.Add(field, msgRequired)
	case utf8.RuneCountInString(inn) > INNMaxLen:
		verr.Add(field, "Ensure this field has no more than 12 characters.")
	case !ValidINN(inn):
		verr.Add(field, "INN must consist of 10 or 12 digits.")
	default:
		return true
	}
	return false
}

func validateAmount(verr *ValidationError, field, raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.Add(field, msgRequired)
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(field, "A valid number is required.")
		return decimal.Zero, false
	}

	ok := true
	total, places := digits(d)
	if total > AmountMaxDigits {
		verr.Add(field, "Ensure that there are no more than 15 digits in total.")
		ok = false
	}
	if places > AmountDecimalPlaces {
		verr.Add(field, "Ensure that there are no more than 2 decimal places.")
		ok = false
	}
	if total-places > AmountMaxDigits-AmountDecimalPlaces {
		verr.Add(field, "Ensure that there are no more than 13 digits before the decimal point.")
		ok = false
	}
	if d.LessThan(MinAmount) {
		verr.Add(field, "Ensure this value is greater than or equal to 0.01.")
		ok = false
	}

	return d, ok
}

// digits returns the total digit count and decimal places of d as written,
// without normalizing trailing zeros.
func digits(d decimal.Decimal) (total, places int) {
	coef := d.Coefficient()
	n := len(coef.Abs(coef).String())
	if coef.Sign() == 0 {
		n = 1
	}

	exp := int(d.Exponent())
	if exp >= 0 {
		return n + exp, 0
	}

	places = -exp
	if n > places {
		return n, places
	}
	return places, places
}

func parseDocumentDate(s string) (time.Time, bool) {
	for _, layout := range documentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
