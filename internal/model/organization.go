package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var innRe = regexp.MustCompile(`^(\d{10}|\d{12})$`)

type Organization struct {
	ID        int64
	INN       string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidINN reports whether inn is 10 or 12 ASCII digits.
func ValidINN(inn string) bool {
	return innRe.MatchString(inn)
}

type CreateOrganizationParams struct {
	INN string
}

func (p CreateOrganizationParams) Validate() error {
	verr := NewValidationError()
	validateINN(verr, "inn", p.INN)
	return verr.OrNil()
}

// Page bounds a list query.
type Page struct {
	Limit  uint64
	Offset uint64
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

func (p Page) Normalize() Page {
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
