package service

import (
	"errors"
	"lingo_learn_backend/internal/util"
	"lingo_learn_backend/pkg/logger"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

func TestIsLockConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadlock", err: errors.New("Error 1213: Deadlock found when trying to get lock; try restarting transaction"), want: true},
		{name: "lock wait timeout", err: errors.New("Error 1205: Lock wait timeout exceeded; try restarting transaction"), want: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
		{name: "other error", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLockConflict(tt.err); got != tt.want {
				t.Fatalf("isLockConflict(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryOnLockConflict(t *testing.T) {
	deadlock := errors.New("Error 1213: Deadlock found when trying to get lock; try restarting transaction")

	t.Run("transient conflict eventually succeeds", func(t *testing.T) {
		calls := 0
		err := retryOnLockConflict(3, 1, 1, func() error {
			calls++
			if calls == 1 {
				return deadlock
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 2 {
			t.Fatalf("expected 2 calls, got %d", calls)
		}
	})

	t.Run("non conflict error returned immediately", func(t *testing.T) {
		boom := errors.New("constraint violation")
		calls := 0
		err := retryOnLockConflict(3, 1, 1, func() error {
			calls++
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected original error, got %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected a single call, got %d", calls)
		}
	})

	t.Run("exhausted retries yield ledger conflict", func(t *testing.T) {
		calls := 0
		err := retryOnLockConflict(3, 1, 1, func() error {
			calls++
			return deadlock
		})
		if !errors.Is(err, util.ErrLedgerConflict) {
			t.Fatalf("expected ErrLedgerConflict, got %v", err)
		}
		if calls != 3 {
			t.Fatalf("expected 3 calls, got %d", calls)
		}
	})
}
