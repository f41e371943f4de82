// Package rdftab persists RDF graphs as tabular files and reloads them.
//
// A Store owns one graph handle and composes the triple codec with a
// storage backend: Parquet for columnar files, SQLite for an indexed
// relational store. Saved Parquet files can additionally be pattern-queried
// in place through DuckDB, without loading a graph.
//
//	s := rdftab.New().
//		Add(quad.IRI("ex:John"), quad.IRI("rdf:type"), quad.IRI("ex:Person")).
//		Add(quad.IRI("ex:John"), quad.IRI("ex:name"), quad.String("John Doe"))
//	if err := s.Save(ctx, "people.parquet"); err != nil { ... }
package rdftab

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/rs/zerolog"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/rdf"
	"github.com/rdftab/rdftab/store"
	"github.com/rdftab/rdftab/store/duckdb"
	"github.com/rdftab/rdftab/store/parquet"
	"github.com/rdftab/rdftab/store/sqlite"
)

// Package-specific error codes.
var (
	RdftabUnknownFormat = errors.MustNewCode("rdftab.unknown_format")
)

// Store is the host around one owned graph handle. Methods that mutate
// return the store for chaining; serialization methods take the target
// path and per-call options.
type Store struct {
	graph *rdf.Graph
	log   zerolog.Logger
}

// New creates a store owning a fresh empty graph.
func New() *Store {
	return NewWithGraph(rdf.NewGraph())
}

// NewWithLogger creates a store whose graph mutations and save/load calls
// log through the given logger.
func NewWithLogger(log zerolog.Logger) *Store {
	s := NewWithGraph(rdf.NewGraphWithLogger(log))
	s.log = log
	return s
}

// NewWithGraph wraps an existing graph handle. The store does not copy it;
// ownership is shared with the caller.
func NewWithGraph(g *rdf.Graph) *Store {
	return &Store{graph: g, log: zerolog.Nop()}
}

// loggerFor resolves the logger for one call: the per-call option wins
// over the store's own.
func (s *Store) loggerFor(o options) zerolog.Logger {
	if o.logger != nil {
		return *o.logger
	}
	return s.log
}

// Graph returns the owned graph handle.
func (s *Store) Graph() *rdf.Graph {
	return s.graph
}

// Add appends one triple and returns the store for chaining.
func (s *Store) Add(sub, pred, obj quad.Value) *Store {
	s.graph.Add(sub, pred, obj)
	return s
}

// Len returns the number of triples in the owned graph.
func (s *Store) Len() int {
	return s.graph.Len()
}

// Triples delegates a pattern query to the owned graph.
func (s *Store) Triples(p rdf.Pattern) []rdf.Triple {
	return s.graph.Triples(p)
}

// Save persists the graph to path, picking the backend from the file
// extension: .parquet for columnar, .db/.sqlite/.sqlite3 for relational.
func (s *Store) Save(ctx context.Context, path string, opts ...Option) error {
	switch classifyPath(path) {
	case formatParquet:
		return s.SaveParquet(ctx, path, opts...)
	case formatSQLite:
		return s.SaveSQLite(ctx, path, opts...)
	default:
		return errors.New(RdftabUnknownFormat, "cannot infer storage format from path", nil).AddContext("path", path)
	}
}

// Load reads triples from path into the owned graph, picking the backend
// from the file extension. Loaded triples append to whatever the graph
// already holds.
func (s *Store) Load(ctx context.Context, path string, opts ...Option) error {
	switch classifyPath(path) {
	case formatParquet:
		return s.LoadParquet(ctx, path, opts...)
	case formatSQLite:
		return s.LoadSQLite(ctx, path, opts...)
	default:
		return errors.New(RdftabUnknownFormat, "cannot infer storage format from path", nil).AddContext("path", path)
	}
}

// SaveParquet writes the graph to a Parquet file.
func (s *Store) SaveParquet(ctx context.Context, path string, opts ...Option) error {
	o := buildOptions(opts)
	w, err := parquet.NewWriter(path, parquet.WriterOptions{Compression: o.compression})
	if err != nil {
		return err
	}
	if err := s.writeAll(ctx, w, o); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// LoadParquet reads a Parquet file into the graph.
func (s *Store) LoadParquet(ctx context.Context, path string, opts ...Option) error {
	o := buildOptions(opts)
	r, err := parquet.NewReader(path, int64(o.batchSize))
	if err != nil {
		return err
	}
	defer r.Close()
	return s.readAll(ctx, r, o)
}

// SaveSQLite writes the graph to a SQLite database as a snapshot,
// replacing any triples the database already holds.
func (s *Store) SaveSQLite(ctx context.Context, path string, opts ...Option) error {
	o := buildOptions(opts)
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := db.NewWriter(ctx)
	if err != nil {
		return err
	}
	if err := s.writeAll(ctx, w, o); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// LoadSQLite reads a SQLite database into the graph.
func (s *Store) LoadSQLite(ctx context.Context, path string, opts ...Option) error {
	o := buildOptions(opts)
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	r := db.NewReader(o.batchSize)
	defer r.Close()
	return s.readAll(ctx, r, o)
}

// QueryParquet pattern-queries a saved Parquet file in place via DuckDB.
func (s *Store) QueryParquet(ctx context.Context, path string, p rdf.Pattern) ([]rdf.Triple, error) {
	return duckdb.Query(ctx, path, p)
}

// writeAll encodes the graph's triples in insertion order and hands them
// to the writer in batches.
func (s *Store) writeAll(ctx context.Context, w store.Writer, o options) error {
	rows := codec.EncodeAll(s.graph.All())
	for start := 0; start < len(rows); start += o.batchSize {
		end := start + o.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := w.Write(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	log := s.loggerFor(o)
	log.Debug().Int("rows", len(rows)).Msg("rows handed to writer")
	return nil
}

// readAll decodes reader batches and inserts triples one at a time, in
// row order.
func (s *Store) readAll(ctx context.Context, r store.Reader, o options) error {
	dec := codec.Decoder{StrictLiterals: o.strictLiterals}
	loaded := 0
	err := r.Read(ctx, func(batch []codec.Row) error {
		for _, row := range batch {
			s.graph.AddTriple(dec.Decode(row))
		}
		loaded += len(batch)
		return nil
	})
	if err != nil {
		return err
	}
	log := s.loggerFor(o)
	log.Debug().Int("rows", loaded).Msg("rows loaded")
	return nil
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatParquet
	formatSQLite
)

func classifyPath(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return formatParquet
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return formatUnknown
	}
}
