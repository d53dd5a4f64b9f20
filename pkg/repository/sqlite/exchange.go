package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/mnemon-dev/mnemon/pkg/domain/model"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
)

type exchangeRepository struct {
	db *sql.DB
}

var _ interfaces.ExchangeRepository = &exchangeRepository{}

func newExchangeRepository(db *sql.DB) *exchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Append(ctx context.Context, record *model.ExchangeRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}
	if record.ID == "" {
		record.ID = model.NewExchangeID()
	}

	const query = `INSERT INTO exchanges (id, user_id, role, message, ts_ns) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		string(record.ID),
		record.UserID,
		string(record.Role),
		record.Message,
		record.Timestamp.UnixNano(),
	)
	if err != nil {
		return goerr.Wrap(types.ErrStoreUnavailable, "failed to insert exchange record",
			goerr.V("user_id", record.UserID),
			goerr.V("exchange_id", record.ID),
			goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *exchangeRepository) ListByUser(ctx context.Context, userID string) ([]*model.ExchangeRecord, error) {
	// seq is the AUTOINCREMENT insertion order, the timestamp tie-breaker
	const query = `SELECT id, user_id, role, message, ts_ns FROM exchanges WHERE user_id = ? ORDER BY ts_ns ASC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, goerr.Wrap(types.ErrStoreUnavailable, "failed to query exchange records",
			goerr.V("user_id", userID),
			goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	records := make([]*model.ExchangeRecord, 0)
	for rows.Next() {
		var id, uid, role, message string
		var tsNS int64
		if err := rows.Scan(&id, &uid, &role, &message, &tsNS); err != nil {
			return nil, goerr.Wrap(err, "failed to scan exchange record")
		}
		records = append(records, &model.ExchangeRecord{
			ID:        model.ExchangeID(id),
			UserID:    uid,
			Role:      types.Role(role),
			Message:   message,
			Timestamp: time.Unix(0, tsNS).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(types.ErrStoreUnavailable, "failed to iterate exchange records",
			goerr.V("user_id", userID),
			goerr.V("cause", err.Error()))
	}

	return records, nil
}
