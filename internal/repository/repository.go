package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// base carries the shared gorm handle and the bounded per-statement timeout
// every repository call runs under.
type base struct {
	db      *gorm.DB
	timeout time.Duration
}

// opCtx layers the statement timeout onto the request context.
func (b base) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}
