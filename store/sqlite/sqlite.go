// Package sqlite is the indexed relational backend: rows live in a triples
// table keyed by an autoincrement ordinal, with secondary indexes on each
// of the three term columns. Access goes through bun over mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/rdf"
	"github.com/rdftab/rdftab/store"
)

// Package-specific error codes.
var (
	SQLiteSchemaFailed = errors.MustNewCode("sqlite.schema_failed")
	SQLiteQueryFailed  = errors.MustNewCode("sqlite.query_failed")
)

// DefaultBatchSize is the scan batch size when none is configured.
const DefaultBatchSize = 10000

// tripleRow is the bun model for one persisted row. The autoincrement id
// preserves insertion order across save and load.
type tripleRow struct {
	bun.BaseModel `bun:"table:triples"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Subject   string `bun:"subject,notnull"`
	Predicate string `bun:"predicate,notnull"`
	Object    string `bun:"object,notnull"`
}

// Store wraps one SQLite database holding a triples table.
type Store struct {
	db *bun.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.New(store.StoreOpenFailed, "failed to open sqlite database", err).AddContext("path", path)
	}
	// A pooled second connection to ":memory:" would see a different,
	// empty database; a single connection also sidesteps writer lock
	// contention on file-backed stores.
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())

	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*tripleRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errors.New(SQLiteSchemaFailed, "failed to create triples table", err)
	}
	for _, idx := range []struct{ name, column string }{
		{"idx_triples_subject", "subject"},
		{"idx_triples_predicate", "predicate"},
		{"idx_triples_object", "object"},
	} {
		if _, err := s.db.NewCreateIndex().
			Model((*tripleRow)(nil)).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.New(SQLiteSchemaFailed, "failed to create index", err).AddContext("index", idx.name)
		}
	}
	return nil
}

// Count returns the number of persisted rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*tripleRow)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.New(SQLiteQueryFailed, "failed to count triples", err)
	}
	return n, nil
}

// Query returns decoded triples matching the pattern, in insertion order.
// Matching is equality on the encoded text of each non-wildcard position,
// using the indexes.
func (s *Store) Query(ctx context.Context, p rdf.Pattern) ([]rdf.Triple, error) {
	var rows []tripleRow
	q := s.db.NewSelect().Model(&rows).Order("id ASC")
	if p.Subject != nil {
		q = q.Where("subject = ?", codec.EncodeTerm(p.Subject))
	}
	if p.Predicate != nil {
		q = q.Where("predicate = ?", codec.EncodeTerm(p.Predicate))
	}
	if p.Object != nil {
		q = q.Where("object = ?", codec.EncodeTerm(p.Object))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.New(SQLiteQueryFailed, "failed to query triples", err)
	}

	triples := make([]rdf.Triple, len(rows))
	for i, r := range rows {
		triples[i] = codec.Decode(codec.Row{Subject: r.Subject, Predicate: r.Predicate, Object: r.Object})
	}
	return triples, nil
}

// NewWriter returns a snapshot writer: the store will hold exactly what
// the Write calls provide. The clear and every insert run in a single
// transaction committed by Close, so a failure anywhere before then
// leaves the previous snapshot intact.
func (s *Store) NewWriter(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.New(store.StoreWriteFailed, "failed to begin snapshot transaction", err)
	}
	if _, err := tx.NewDelete().Model((*tripleRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		tx.Rollback()
		return nil, errors.New(store.StoreWriteFailed, "failed to clear triples table", err)
	}
	return &Writer{tx: tx}, nil
}

// NewReader returns an ordered scan reader. batchSize bounds rows per
// callback; values below 1 fall back to DefaultBatchSize.
func (s *Store) NewReader(batchSize int) *Reader {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Reader{db: s.db, batchSize: batchSize}
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.New(store.StoreCloseFailed, "failed to close sqlite database", err)
	}
	return nil
}

// Writer inserts rows in insertion order inside the snapshot transaction.
type Writer struct {
	tx     bun.Tx
	failed bool
	closed bool
}

var _ store.Writer = (*Writer)(nil)

// Write bulk-inserts one batch of rows.
func (w *Writer) Write(ctx context.Context, rows []codec.Row) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]tripleRow, len(rows))
	for i, r := range rows {
		models[i] = tripleRow{Subject: r.Subject, Predicate: r.Predicate, Object: r.Object}
	}
	if _, err := w.tx.NewInsert().Model(&models).Exec(ctx); err != nil {
		w.failed = true
		return errors.New(store.StoreWriteFailed, "failed to insert triples", err)
	}
	return nil
}

// Close commits the snapshot. If any Write failed, the transaction is
// rolled back instead and the rows from before NewWriter stay readable.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.failed {
		w.tx.Rollback()
		return nil
	}
	if err := w.tx.Commit(); err != nil {
		return errors.New(store.StoreCloseFailed, "failed to commit snapshot", err)
	}
	return nil
}

// Reader scans the triples table in id order, batch by batch.
type Reader struct {
	db        *bun.DB
	batchSize int
}

var _ store.Reader = (*Reader)(nil)

// Read streams batches to fn until the table is exhausted or fn errors.
func (r *Reader) Read(ctx context.Context, fn func(batch []codec.Row) error) error {
	lastID := int64(0)
	for {
		var models []tripleRow
		err := r.db.NewSelect().
			Model(&models).
			Where("id > ?", lastID).
			Order("id ASC").
			Limit(r.batchSize).
			Scan(ctx)
		if err != nil {
			return errors.New(store.StoreReadFailed, "failed to scan triples", err)
		}
		if len(models) == 0 {
			return nil
		}

		batch := make([]codec.Row, len(models))
		for i, m := range models {
			batch[i] = codec.Row{Subject: m.Subject, Predicate: m.Predicate, Object: m.Object}
		}
		if err := fn(batch); err != nil {
			return err
		}
		lastID = models[len(models)-1].ID
	}
}

// Close is a no-op; the Store owns the connection.
func (r *Reader) Close() error { return nil }
