package otp

import (
	"context"
	"time"
)

// Record is one outstanding verification code for a phone number. There is at
// most one per phone; re-requests overwrite it.
type Record struct {
	Code   string    `json:"code"`
	Expiry time.Time `json:"expiry"`
}

// Store is the key-value home for outstanding codes. Implementations map
// domain.ErrNotFound for missing phones.
type Store interface {
	Get(ctx context.Context, phone string) (*Record, error)
	Set(ctx context.Context, phone string, rec Record) error
	Delete(ctx context.Context, phone string) error
}
