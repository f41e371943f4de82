// Package parquet is the columnar backend: rows are persisted as a Parquet
// file with three utf8 columns named subject, predicate and object. Writes
// go through pqarrow record batches; reads stream back in file order with a
// configurable Arrow batch size.
package parquet

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	pq "github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/store"
)

// Package-specific error codes.
var (
	ParquetCreateFileFailed   = errors.MustNewCode("parquet.create_file_failed")
	ParquetCreateWriterFailed = errors.MustNewCode("parquet.create_writer_failed")
	ParquetWriterClosed       = errors.MustNewCode("parquet.writer_closed")
	ParquetSchemaMismatch     = errors.MustNewCode("parquet.schema_mismatch")
)

// DefaultBatchSize is the row count per read batch when none is configured.
const DefaultBatchSize = 10000

// Schema returns the fixed three-column layout rows are stored under.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "subject", Type: arrow.BinaryTypes.String},
		{Name: "predicate", Type: arrow.BinaryTypes.String},
		{Name: "object", Type: arrow.BinaryTypes.String},
	}, nil)
}

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Compression names the Parquet codec: none, snappy, gzip, brotli,
	// lz4 or zstd. Defaults to snappy.
	Compression string
}

// Writer persists rows to one Parquet file. Each Write call becomes one
// record batch; Close finalizes the footer.
type Writer struct {
	f      *os.File
	writer *pqarrow.FileWriter
	schema *arrow.Schema
	mem    memory.Allocator
	closed bool
}

var _ store.Writer = (*Writer)(nil)

// NewWriter creates the file at path, truncating any existing content.
func NewWriter(path string, opts WriterOptions) (*Writer, error) {
	compression := opts.Compression
	if compression == "" {
		compression = "snappy"
	}
	codecType, err := GetCompressionCodec(compression)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.New(ParquetCreateFileFailed, "failed to create parquet file", err).AddContext("path", path)
	}

	schema := Schema()
	props := pq.NewWriterProperties(pq.WithCompression(codecType))
	writer, err := pqarrow.NewFileWriter(schema, f, props, pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		return nil, errors.New(ParquetCreateWriterFailed, "failed to create parquet writer", err).AddContext("path", path)
	}

	return &Writer{
		f:      f,
		writer: writer,
		schema: schema,
		mem:    memory.NewGoAllocator(),
	}, nil
}

// Write appends a batch of rows as one record. Order within and across
// calls is preserved in the file.
func (w *Writer) Write(ctx context.Context, rows []codec.Row) error {
	if w.closed {
		return errors.New(ParquetWriterClosed, "parquet writer is closed", nil)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b := array.NewRecordBuilder(w.mem, w.schema)
	defer b.Release()

	subjects := b.Field(0).(*array.StringBuilder)
	predicates := b.Field(1).(*array.StringBuilder)
	objects := b.Field(2).(*array.StringBuilder)
	for _, r := range rows {
		subjects.Append(r.Subject)
		predicates.Append(r.Predicate)
		objects.Append(r.Object)
	}

	rec := b.NewRecord()
	defer rec.Release()

	if err := w.writer.Write(rec); err != nil {
		return errors.New(store.StoreWriteFailed, "failed to write parquet record", err)
	}
	return nil
}

// Close writes the footer and closes the file. Safe to call once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.writer.Close(); err != nil {
		w.f.Close()
		return errors.New(store.StoreCloseFailed, "failed to finalize parquet file", err)
	}
	if err := w.f.Close(); err != nil {
		return errors.New(store.StoreCloseFailed, "failed to close parquet file", err)
	}
	return nil
}

// Reader streams rows back from a Parquet file in original order.
type Reader struct {
	pf        *file.Reader
	batchSize int64
}

var _ store.Reader = (*Reader)(nil)

// NewReader opens the file at path. batchSize bounds rows per callback
// batch; values below 1 fall back to DefaultBatchSize.
func NewReader(path string, batchSize int64) (*Reader, error) {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.New(store.StoreOpenFailed, "failed to open parquet file", err).AddContext("path", path)
	}
	return &Reader{pf: pf, batchSize: batchSize}, nil
}

// Read streams record batches to fn, converted to rows. The three columns
// must be utf8; anything else is a schema mismatch.
func (r *Reader) Read(ctx context.Context, fn func(batch []codec.Row) error) error {
	fr, err := pqarrow.NewFileReader(r.pf, pqarrow.ArrowReadProperties{BatchSize: r.batchSize}, memory.NewGoAllocator())
	if err != nil {
		return errors.New(store.StoreReadFailed, "failed to create arrow reader", err)
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return errors.New(store.StoreReadFailed, "failed to create record reader", err)
	}
	defer rr.Release()

	for rr.Next() {
		rec := rr.Record()
		batch, err := recordToRows(rec)
		if err != nil {
			return err
		}
		if err := fn(batch); err != nil {
			return err
		}
	}
	if err := rr.Err(); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.New(store.StoreReadFailed, "failed while reading parquet records", err)
	}
	return nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if err := r.pf.Close(); err != nil {
		return errors.New(store.StoreCloseFailed, "failed to close parquet file", err)
	}
	return nil
}

func recordToRows(rec arrow.Record) ([]codec.Row, error) {
	if rec.NumCols() < 3 {
		return nil, errors.Newf(ParquetSchemaMismatch, "expected 3 columns, got %d", rec.NumCols())
	}
	cols := make([]*array.String, 3)
	for i := range cols {
		c, ok := rec.Column(i).(*array.String)
		if !ok {
			return nil, errors.Newf(ParquetSchemaMismatch, "column %d is not utf8", i)
		}
		cols[i] = c
	}

	rows := make([]codec.Row, rec.NumRows())
	for i := 0; i < int(rec.NumRows()); i++ {
		rows[i] = codec.Row{
			Subject:   cols[0].Value(i),
			Predicate: cols[1].Value(i),
			Object:    cols[2].Value(i),
		}
	}
	return rows, nil
}
