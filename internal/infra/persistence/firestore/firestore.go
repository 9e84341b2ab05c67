// Package firestore contains the concrete implementation of the persistence layer on Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"friendlocator/internal/domain/repository"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ClientParams holds dependencies for NewClient, injected by Fx
type ClientParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	App    *firebase.App `optional:"true"`
	Logger *slog.Logger
}

// NewClient opens the Firestore client of the Firebase app and closes it on shutdown.
func NewClient(params ClientParams) (*fs.Client, error) {
	if params.App == nil {
		return nil, errors.New("firestore store driver requires a configured firebase project")
	}

	client, err := params.App.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open firestore client")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// base is embedded by every repository. tx is nil outside of a transaction.
type base struct {
	client *fs.Client
	tx     *fs.Transaction
}

func isNotFound(err error) bool {
	return status.Code(errors.Cause(err)) == codes.NotFound
}

func (b base) get(ctx context.Context, ref *fs.DocumentRef) (*fs.DocumentSnapshot, error) {
	if b.tx != nil {
		return b.tx.Get(ref)
	}

	return ref.Get(ctx)
}

func (b base) documents(ctx context.Context, q fs.Query) ([]*fs.DocumentSnapshot, error) {
	var it *fs.DocumentIterator
	if b.tx != nil {
		it = b.tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}

	docs, err := it.GetAll()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return docs, nil
}

func (b base) create(ctx context.Context, ref *fs.DocumentRef, data any) error {
	if b.tx != nil {
		return errors.WithStack(b.tx.Create(ref, data))
	}
	_, err := ref.Create(ctx, data)

	return errors.WithStack(err)
}

func (b base) set(ctx context.Context, ref *fs.DocumentRef, data any) error {
	if b.tx != nil {
		return errors.WithStack(b.tx.Set(ref, data))
	}
	_, err := ref.Set(ctx, data)

	return errors.WithStack(err)
}

func (b base) update(ctx context.Context, ref *fs.DocumentRef, updates []fs.Update) error {
	if b.tx != nil {
		return errors.WithStack(b.tx.Update(ref, updates))
	}
	_, err := ref.Update(ctx, updates)

	return errors.WithStack(err)
}

func (b base) delete(ctx context.Context, ref *fs.DocumentRef) error {
	if b.tx != nil {
		return errors.WithStack(b.tx.Delete(ref))
	}
	_, err := ref.Delete(ctx)

	return errors.WithStack(err)
}

// decodeAll maps every snapshot with decode.
func decodeAll[M any, E any](docs []*fs.DocumentSnapshot, toDomain func(string, *M) *E) ([]*E, error) {
	out := make([]*E, 0, len(docs))
	for _, doc := range docs {
		var m M
		if err := doc.DataTo(&m); err != nil {
			return nil, errors.Wrapf(err, "decode %s", doc.Ref.Path)
		}
		out = append(out, toDomain(doc.Ref.ID, &m))
	}

	return out, nil
}

// watchQuery turns a query listener into a Subscription. Each query snapshot is mapped
// with toSnapshot.
func watchQuery[T any](ctx context.Context, q fs.Query, toSnapshot func(*fs.QuerySnapshot) (T, error)) *repository.Subscription[T] {
	return repository.NewSubscription(ctx, func(ctx context.Context, emit repository.EmitFunc[T]) error {
		it := q.Snapshots(ctx)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, iterator.Done) {
					return nil
				}

				return errors.WithStack(err)
			}

			snapshot, err := toSnapshot(qs)
			if err != nil {
				return err
			}
			if !emit(snapshot) {
				return nil
			}
		}
	})
}

// queryDocs collects the documents of a query snapshot.
func queryDocs(qs *fs.QuerySnapshot) ([]*fs.DocumentSnapshot, error) {
	docs, err := qs.Documents.GetAll()

	return docs, errors.WithStack(err)
}
