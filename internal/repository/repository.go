// Package repository holds the entity stores. Each store exclusively owns
// its collection in memory and re-serializes it wholesale into the key-value
// substrate after every mutation.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ombela/internal/localstore"
)

// Storage keys, one per collection. Kept identical to the layout written by
// the original browser storefront so existing data stays readable.
const (
	keyCatalog = "ombelamarket_produtos"
	keyCart    = "ombelamarket_carrinho"
	keyOrders  = "ombelamarket_pedidos"
	keyReviews = "ombelamarket_avaliacoes"
	keyUsers   = "ombelamarket_usuarios"
	keySession = "ombelamarket_sessao"
)

// ErrNotFound is returned when a lookup does not match any record.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned by Users.Add when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrNotPending is returned when approving or rejecting an order that has
// already left the pending state. Status transitions are one-way.
var ErrNotPending = errors.New("order is not pending")

func persist(ctx context.Context, kv localstore.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
