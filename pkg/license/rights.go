package license

import (
	"context"

	"github.com/readium/kotlin-toolkit-sub011/pkg/logger"
	"github.com/readium/kotlin-toolkit-sub011/pkg/rights"
)

// CharactersToCopyLeft returns the remaining copy quota, nil for unlimited.
func (l *License) CharactersToCopyLeft(ctx context.Context) *int {
	return l.remaining(ctx, rights.CounterCopy)
}

// PagesToPrintLeft returns the remaining print quota, nil for unlimited.
func (l *License) PagesToPrintLeft(ctx context.Context) *int {
	return l.remaining(ctx, rights.CounterPrint)
}

// CanCopy reports whether count more characters may be copied.
func (l *License) CanCopy(ctx context.Context, count int) bool {
	left := l.remaining(ctx, rights.CounterCopy)
	return left == nil || count <= *left
}

// Copy consumes count characters from the copy quota. The consumption is
// all-or-nothing: when count exceeds the remaining quota nothing is
// consumed and false is returned.
func (l *License) Copy(ctx context.Context, count int) bool {
	return l.consume(ctx, rights.CounterCopy, count)
}

// CanPrint reports whether count more pages may be printed.
func (l *License) CanPrint(ctx context.Context, count int) bool {
	left := l.remaining(ctx, rights.CounterPrint)
	return left == nil || count <= *left
}

// Print consumes count pages from the print quota, all-or-nothing like
// Copy.
func (l *License) Print(ctx context.Context, count int) bool {
	return l.consume(ctx, rights.CounterPrint, count)
}

// remaining reads a counter lazily. A missing counter means the license
// never restricted the right; a store failure is logged and treated the
// same, because a broken local counter must not brick reading.
func (l *License) remaining(ctx context.Context, counter rights.Counter) *int {
	left, err := l.rightsStore.Get(ctx, l.LicenseDocument().ID, counter)
	if err != nil {
		l.log.Warn("rights counter unavailable, treating as unlimited",
			logger.Counter(string(counter)),
			logger.Error(err),
		)
		return nil
	}
	return left
}

func (l *License) consume(ctx context.Context, counter rights.Counter, amount int) bool {
	if amount < 0 {
		return false
	}

	left := l.remaining(ctx, counter)
	if left == nil {
		// Unlimited: succeed without creating a counter.
		return true
	}
	if amount > *left {
		return false
	}

	value := max(0, *left-amount)
	if err := l.rightsStore.Set(ctx, l.LicenseDocument().ID, counter, value); err != nil {
		l.log.Warn("failed to persist rights counter",
			logger.Counter(string(counter)),
			logger.Error(err),
		)
	}
	return true
}
