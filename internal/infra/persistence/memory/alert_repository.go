package memory

import (
	"context"
	"sort"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"

	"github.com/pkg/errors"
)

type alertRepository struct {
	base
}

// NewAlertRepository creates an AlertRepository over store.
func NewAlertRepository(store *Store) repository.AlertRepository {
	return &alertRepository{base: base{store: store}}
}

func (r *alertRepository) CreateAlert(_ context.Context, alert *entity.Alert) error {
	if err := r.store.checkFailure(OpCreateAlert); err != nil {
		return err
	}

	alert.ID = newID()
	doc := *alert
	doc.ID = ""
	r.apply(func() { r.store.alerts[alert.ID] = doc })

	return nil
}

func (r *alertRepository) FindAlertByID(_ context.Context, id string) (*entity.Alert, error) {
	if err := r.store.checkFailure(OpFindAlert); err != nil {
		return nil, err
	}

	var alert entity.Alert
	var ok bool
	r.store.read(func() { alert, ok = r.store.alerts[id] })
	if !ok {
		return nil, errors.WithStack(repository.ErrAlertNotFound)
	}
	alert.ID = id

	return &alert, nil
}

func (r *alertRepository) MarkAlertRead(_ context.Context, id string) error {
	if err := r.store.checkFailure(OpUpdateAlert); err != nil {
		return err
	}

	var exists bool
	r.store.read(func() { _, exists = r.store.alerts[id] })
	if !exists {
		return errors.WithStack(repository.ErrAlertNotFound)
	}

	r.apply(func() {
		if alert, ok := r.store.alerts[id]; ok {
			alert.IsRead = true
			r.store.alerts[id] = alert
		}
	})

	return nil
}

func (r *alertRepository) DeleteAlert(_ context.Context, id string) error {
	if err := r.store.checkFailure(OpDeleteAlert); err != nil {
		return err
	}

	r.apply(func() { delete(r.store.alerts, id) })

	return nil
}

func (r *alertRepository) WatchReceivedAlerts(ctx context.Context, userID string, limit int) *repository.Subscription[[]*entity.Alert] {
	return watch(ctx, r.store, OpFindAlert, func() []*entity.Alert {
		alerts := make([]*entity.Alert, 0)
		for id, alert := range r.store.alerts {
			if alert.ToUserID != userID {
				continue
			}
			alert.ID = id
			alerts = append(alerts, &alert)
		}

		sort.Slice(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
		if limit > 0 && len(alerts) > limit {
			alerts = alerts[:limit]
		}

		return alerts
	})
}

func (r *alertRepository) WatchUnreadAlertCount(ctx context.Context, userID string) *repository.Subscription[int] {
	return watch(ctx, r.store, OpFindAlert, func() int {
		count := 0
		for _, alert := range r.store.alerts {
			if alert.ToUserID == userID && !alert.IsRead {
				count++
			}
		}

		return count
	})
}
