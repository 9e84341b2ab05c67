package firestore

import (
	"context"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/infra/persistence/model"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

type alertRepository struct {
	base
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(client *fs.Client) repository.AlertRepository {
	return &alertRepository{base: base{client: client}}
}

func (r *alertRepository) alerts() *fs.CollectionRef {
	return r.client.Collection(constants.CollectionAlerts)
}

func (r *alertRepository) CreateAlert(ctx context.Context, alert *entity.Alert) error {
	ref := r.alerts().NewDoc()
	if err := r.create(ctx, ref, model.FromAlertDomain(alert)); err != nil {
		return errors.Wrap(err, "failed to create alert")
	}
	alert.ID = ref.ID

	return nil
}

func (r *alertRepository) FindAlertByID(ctx context.Context, id string) (*entity.Alert, error) {
	doc, err := r.get(ctx, r.alerts().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.WithStack(repository.ErrAlertNotFound)
		}

		return nil, errors.Wrap(err, "failed to find alert")
	}

	var m model.AlertModel
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode alert")
	}

	return model.ToAlertDomain(doc.Ref.ID, &m), nil
}

func (r *alertRepository) MarkAlertRead(ctx context.Context, id string) error {
	err := r.update(ctx, r.alerts().Doc(id), []fs.Update{{Path: "is_read", Value: true}})
	if isNotFound(err) {
		return errors.WithStack(repository.ErrAlertNotFound)
	}

	return errors.Wrap(err, "failed to mark alert read")
}

func (r *alertRepository) DeleteAlert(ctx context.Context, id string) error {
	return errors.Wrap(r.delete(ctx, r.alerts().Doc(id)), "failed to delete alert")
}

func (r *alertRepository) WatchReceivedAlerts(ctx context.Context, userID string, limit int) *repository.Subscription[[]*entity.Alert] {
	q := r.alerts().
		Where("to_user_id", "==", userID).
		OrderBy("created_at", fs.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	return watchQuery(ctx, q, func(qs *fs.QuerySnapshot) ([]*entity.Alert, error) {
		docs, err := queryDocs(qs)
		if err != nil {
			return nil, err
		}

		return decodeAll(docs, model.ToAlertDomain)
	})
}

func (r *alertRepository) WatchUnreadAlertCount(ctx context.Context, userID string) *repository.Subscription[int] {
	q := r.alerts().
		Where("to_user_id", "==", userID).
		Where("is_read", "==", false)

	return watchQuery(ctx, q, func(qs *fs.QuerySnapshot) (int, error) {
		return qs.Size, nil
	})
}
