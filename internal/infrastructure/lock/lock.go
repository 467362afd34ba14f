package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultTimeout bounds how long Lock waits for a busy user.
const DefaultTimeout = 5 * time.Second

// ErrLockTimeout is returned when a user lock stays busy past the timeout.
var ErrLockTimeout = errors.New("lock timeout")

// userLock is a one-slot semaphore shared by the holder and any waiters.
type userLock struct {
	sem  chan struct{}
	refs int
}

// UserLockManager serializes work per user inside one process. An abandoned
// wait never takes the lock later, and a user's entry is dropped once nobody
// holds or waits for it.
type UserLockManager struct {
	mu      sync.Mutex
	locks   map[string]*userLock
	timeout time.Duration
	logger  *logger.Logger
}

func NewUserLockManager(timeout time.Duration, log *logger.Logger) *UserLockManager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	log.Debug("UserLockManager initialized", zap.Duration("timeout", timeout))
	return &UserLockManager{
		locks:   make(map[string]*userLock),
		timeout: timeout,
		logger:  log,
	}
}

// Lock acquires a lock for the given userID with timeout
func (m *UserLockManager) Lock(ctx context.Context, userID string) error {
	l := m.acquire(userID)

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		m.logger.Debug("Lock acquired", zap.String("userID", userID))
		return nil
	case <-ctx.Done():
		m.release(userID, l)
		m.logger.Warn("Failed to acquire lock: context cancelled", zap.String("userID", userID), zap.Error(ctx.Err()))
		return fmt.Errorf("failed to acquire lock for user %s: %w", userID, ctx.Err())
	case <-timer.C:
		m.release(userID, l)
		m.logger.Warn("Failed to acquire lock: timeout", zap.String("userID", userID), zap.Duration("timeout", m.timeout))
		return fmt.Errorf("failed to acquire lock for user %s: %w", userID, ErrLockTimeout)
	}
}

// Unlock releases the lock for the given userID
func (m *UserLockManager) Unlock(userID string) {
	m.mu.Lock()
	l, ok := m.locks[userID]
	m.mu.Unlock()
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.String("userID", userID))
		return
	}

	select {
	case <-l.sem:
		m.release(userID, l)
		m.logger.Debug("Lock released", zap.String("userID", userID))
	default:
		m.logger.Warn("Unlock of a lock that is not held", zap.String("userID", userID))
	}
}

func (m *UserLockManager) acquire(userID string) *userLock {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &userLock{sem: make(chan struct{}, 1)}
		m.locks[userID] = l
	}
	l.refs++
	return l
}

func (m *UserLockManager) release(userID string, l *userLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, userID)
	}
}
