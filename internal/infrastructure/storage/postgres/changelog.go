package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"shopcat/internal/core/id"
	"shopcat/internal/domain/product"
)

// CompressionAlgo specifies the compression applied to a snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// defaultCompressThreshold is the snapshot size above which zstd kicks in.
const defaultCompressThreshold = 4 * 1024

// ChangeEntry is one recorded catalog mutation.
type ChangeEntry struct {
	ID                 id.ID           `db:"id"`
	ProductID          id.ID           `db:"product_id"`
	Action             string          `db:"action"`
	Snapshot           json.RawMessage `db:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo"`
	CreatedAt          time.Time       `db:"created_at"`
}

// Compile-time check that ChangeLog implements the domain contract.
var _ product.ChangeRecorder = (*ChangeLog)(nil)

// ChangeLog appends catalog mutations to the catalog_changes table.
// Writes go through GetQuerier, so an entry recorded during an active
// transaction commits or rolls back together with the mutation itself.
type ChangeLog struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewChangeLog creates a new change log.
func NewChangeLog(txManager *TxManager) (*ChangeLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ChangeLog{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: defaultCompressThreshold,
	}, nil
}

// Record appends one entry. The snapshot is marshalled to JSON and
// compressed when it exceeds the threshold.
func (l *ChangeLog) Record(ctx context.Context, productID id.ID, action product.ChangeAction, snapshot any) error {
	entry := ChangeEntry{
		ID:        id.New(),
		ProductID: productID,
		Action:    string(action),
		CreatedAt: time.Now().UTC(),
	}

	if snapshot != nil {
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo = l.compress(raw)
	} else {
		entry.CompressionAlgo = CompressionNone
	}

	sql := `
		INSERT INTO catalog_changes (
			id, product_id, action, snapshot, snapshot_compressed,
			compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := l.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.ProductID, entry.Action,
		entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	if err != nil {
		return translateErr(ctx, "insert change entry", err)
	}
	return nil
}

// History retrieves the recorded mutations for a product, newest first,
// with compressed snapshots restored.
func (l *ChangeLog) History(ctx context.Context, productID id.ID, limit int) ([]ChangeEntry, error) {
	sql := `
		SELECT id, product_id, action, snapshot, snapshot_compressed,
			   compression_algo, created_at
		FROM catalog_changes
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := l.txManager.GetQuerier(ctx).Query(ctx, sql, productID, limit)
	if err != nil {
		return nil, translateErr(ctx, "query change history", err)
	}
	defer rows.Close()

	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		err := rows.Scan(
			&e.ID, &e.ProductID, &e.Action, &e.Snapshot, &e.SnapshotCompressed,
			&e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan change entry: %w", err)
		}

		if e.Snapshot, err = l.decompress(e); err != nil {
			return nil, err
		}
		e.SnapshotCompressed = nil

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// compress returns the stored representation of a raw snapshot.
func (l *ChangeLog) compress(raw []byte) (plain json.RawMessage, compressed []byte, algo CompressionAlgo) {
	if len(raw) <= l.compressThreshold {
		return raw, nil, CompressionNone
	}
	return nil, l.encoder.EncodeAll(raw, nil), CompressionZstd
}

// decompress restores the raw snapshot from a stored entry.
func (l *ChangeLog) decompress(e ChangeEntry) (json.RawMessage, error) {
	if e.CompressionAlgo != CompressionZstd || len(e.SnapshotCompressed) == 0 {
		return e.Snapshot, nil
	}
	raw, err := l.decoder.DecodeAll(e.SnapshotCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	return raw, nil
}
