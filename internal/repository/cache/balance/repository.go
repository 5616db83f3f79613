package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

const keyPrefix = "payments:balance:"

type cachedOrganization struct {
	ID        int64     `json:"id"`
	INN       string    `json:"inn"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type repository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewBalanceCache(client redis.UniversalClient, ttl time.Duration) *repository {
	return &repository{client: client, ttl: ttl}
}

func key(inn string) string { return keyPrefix + inn }

func (r *repository) Get(ctx context.Context, inn string) (*model.Organization, error) {
	raw, err := r.client.Get(ctx, key(inn)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCacheMiss
		}
		return nil, err
	}

	var c cachedOrganization
	if err := sonic.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cached balance: %w", err)
	}

	balance, err := decimal.NewFromString(c.Balance)
	if err != nil {
		return nil, fmt.Errorf("decode cached balance: %w", err)
	}

	return &model.Organization{
		ID:        c.ID,
		INN:       c.INN,
		Balance:   balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (r *repository) Set(ctx context.Context, org *model.Organization) error {
	raw, err := sonic.Marshal(cachedOrganization{
		ID:        org.ID,
		INN:       org.INN,
		Balance:   org.Balance.StringFixed(model.AmountDecimalPlaces),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}

	return r.client.Set(ctx, key(org.INN), raw, r.ttl).Err()
}

func (r *repository) Delete(ctx context.Context, inn string) error {
	return r.client.Del(ctx, key(inn)).Err()
}
