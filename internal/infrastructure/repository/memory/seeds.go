package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
)

type serverSeedRepository struct {
	with accessor
}

func (r *serverSeedRepository) GetActive(ctx context.Context) (*domain.ServerSeed, error) {
	var out *domain.ServerSeed
	err := r.with(func(st *state) error {
		for _, s := range st.seeds {
			if s.IsActive {
				s := s
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *serverSeedRepository) GetActiveForShare(ctx context.Context) (*domain.ServerSeed, error) {
	return r.GetActive(ctx)
}

func (r *serverSeedRepository) GetActiveForUpdate(ctx context.Context) (*domain.ServerSeed, error) {
	return r.GetActive(ctx)
}

func (r *serverSeedRepository) GetByID(ctx context.Context, id string) (*domain.ServerSeed, error) {
	var out *domain.ServerSeed
	err := r.with(func(st *state) error {
		if s, ok := st.seeds[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func activeConflict(st *state, seed *domain.ServerSeed) error {
	if !seed.IsActive {
		return nil
	}
	for id, s := range st.seeds {
		if s.IsActive && id != seed.ID {
			return fmt.Errorf("active server seed: %w", domain.ErrDuplicate)
		}
	}
	return nil
}

func (r *serverSeedRepository) Create(ctx context.Context, seed *domain.ServerSeed) error {
	return r.with(func(st *state) error {
		if seed.ID == "" {
			seed.ID = uuid.NewString()
		}
		if err := activeConflict(st, seed); err != nil {
			return err
		}
		if seed.CreatedAt.IsZero() {
			seed.CreatedAt = time.Now().UTC()
		}
		st.seeds[seed.ID] = *seed
		st.order[seed.ID] = st.next()
		return nil
	})
}

func (r *serverSeedRepository) Update(ctx context.Context, seed *domain.ServerSeed) error {
	return r.with(func(st *state) error {
		if _, ok := st.seeds[seed.ID]; !ok {
			return fmt.Errorf("server seed %s not found", seed.ID)
		}
		if err := activeConflict(st, seed); err != nil {
			return err
		}
		st.seeds[seed.ID] = *seed
		return nil
	})
}

func (r *serverSeedRepository) ListRotated(ctx context.Context, limit int) ([]*domain.ServerSeed, error) {
	var out []*domain.ServerSeed
	order := make(map[string]int64)
	err := r.with(func(st *state) error {
		for id, s := range st.seeds {
			if !s.IsActive && s.RotatedAt != nil {
				s := s
				out = append(out, &s)
				order[id] = st.order[id]
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return order[out[i].ID] > order[out[j].ID] })
	return truncate(out, limit), err
}

type outboxRepository struct {
	with accessor
}

func (r *outboxRepository) Save(ctx context.Context, event *domain.OutboxEvent) error {
	return r.with(func(st *state) error {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if _, ok := st.outbox[event.ID]; ok {
			return fmt.Errorf("outbox event %s: %w", event.ID, domain.ErrDuplicate)
		}
		if event.Status == "" {
			event.Status = domain.EventStatusPending
		}
		stored := *event
		stored.Data = event.Data.Clone()
		st.outbox[event.ID] = stored
		st.order[event.ID] = st.next()
		return nil
	})
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var out []*domain.OutboxEvent
	order := make(map[string]int64)
	err := r.with(func(st *state) error {
		for id, e := range st.outbox {
			if e.Status == domain.EventStatusPending {
				e := e
				e.Data = e.Data.Clone()
				out = append(out, &e)
				order[id] = st.order[id]
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return order[out[i].ID] < order[out[j].ID] })
	return truncate(out, limit), err
}

func (r *outboxRepository) update(eventID string, fn func(e *domain.OutboxEvent)) error {
	return r.with(func(st *state) error {
		e, ok := st.outbox[eventID]
		if !ok {
			return fmt.Errorf("outbox event %s not found", eventID)
		}
		fn(&e)
		st.outbox[eventID] = e
		return nil
	})
}

func (r *outboxRepository) MarkAsProcessed(ctx context.Context, eventID string) error {
	return r.update(eventID, func(e *domain.OutboxEvent) {
		now := time.Now().UTC()
		e.Status = domain.EventStatusProcessed
		e.ProcessedAt = &now
	})
}

func (r *outboxRepository) MarkAsFailed(ctx context.Context, eventID string, errMsg string) error {
	return r.update(eventID, func(e *domain.OutboxEvent) {
		e.Status = domain.EventStatusFailed
		e.Error = &errMsg
	})
}

func (r *outboxRepository) IncrementRetryCount(ctx context.Context, eventID string) error {
	return r.update(eventID, func(e *domain.OutboxEvent) {
		e.RetryCount++
	})
}
