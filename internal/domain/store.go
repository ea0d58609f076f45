package domain

import "context"

// Transactor runs fn inside a store transaction. Repository calls made with
// the ctx passed to fn join that transaction; nested calls reuse it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
