package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/mnemon-dev/mnemon/pkg/domain/model"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// exchangeDocument is the Firestore document representation of
// model.ExchangeRecord. The field names are the persisted-state
// contract: queryable and sortable by (user_id, timestamp).
type exchangeDocument struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"user_id"`
	Role      string    `firestore:"role"`
	Message   string    `firestore:"message"`
	Timestamp time.Time `firestore:"timestamp"`
}

func toExchangeDocument(rec *model.ExchangeRecord) *exchangeDocument {
	return &exchangeDocument{
		ID:        string(rec.ID),
		UserID:    rec.UserID,
		Role:      string(rec.Role),
		Message:   rec.Message,
		Timestamp: rec.Timestamp,
	}
}

func fromExchangeDocument(d *exchangeDocument) *model.ExchangeRecord {
	return &model.ExchangeRecord{
		ID:        model.ExchangeID(d.ID),
		UserID:    d.UserID,
		Role:      types.Role(d.Role),
		Message:   d.Message,
		Timestamp: d.Timestamp.UTC(),
	}
}

type exchangeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ExchangeRepository = &exchangeRepository{}

func newExchangeRepository(client *firestore.Client) *exchangeRepository {
	return &exchangeRepository{client: client}
}

func (r *exchangeRepository) exchangesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_exchanges"
	}
	return "exchanges"
}

func (r *exchangeRepository) Append(ctx context.Context, record *model.ExchangeRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}
	if record.ID == "" {
		record.ID = model.NewExchangeID()
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	ref := r.client.Collection(r.exchangesCollection()).Doc(string(record.ID))
	if _, err := ref.Create(ctx, toExchangeDocument(record)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(err, "exchange record already exists",
				goerr.V("exchange_id", record.ID))
		}
		return goerr.Wrap(types.ErrStoreUnavailable, "failed to append exchange record",
			goerr.V("user_id", record.UserID),
			goerr.V("exchange_id", record.ID),
			goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *exchangeRepository) ListByUser(ctx context.Context, userID string) ([]*model.ExchangeRecord, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	// Ties on timestamp fall back to the UUIDv7 document ID, which
	// encodes insertion order. Requires the composite index installed
	// by the migrate command.
	query := r.client.Collection(r.exchangesCollection()).
		Where("user_id", "==", userID).
		OrderBy("timestamp", firestore.Asc).
		OrderBy("id", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	records := make([]*model.ExchangeRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(types.ErrStoreUnavailable, "failed to iterate exchange records",
				goerr.V("user_id", userID),
				goerr.V("cause", err.Error()))
		}

		var d exchangeDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal exchange record",
				goerr.V("doc_id", doc.Ref.ID))
		}
		records = append(records, fromExchangeDocument(&d))
	}

	return records, nil
}
