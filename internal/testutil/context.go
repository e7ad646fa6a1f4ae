package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout создаёт context с timeout, отменяемый при завершении теста.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}

// CancelledContext возвращает уже отменённый context.
func CancelledContext(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	return ctx
}
