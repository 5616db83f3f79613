package repository

import (
	"context"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

// noop is used when Redis is disabled; every read is a miss.
type noop struct{}

func NewNoopCache() noop { return noop{} }

func (noop) Get(context.Context, string) (*model.Organization, error) { return nil, model.ErrCacheMiss }
func (noop) Set(context.Context, *model.Organization) error           { return nil }
func (noop) Delete(context.Context, string) error                     { return nil }
