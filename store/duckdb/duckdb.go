// Package duckdb runs pattern queries directly against a saved Parquet
// file, without loading it into a graph first. An in-memory DuckDB scans
// the file with read_parquet; matching is equality on the encoded text of
// each bound position, the same convention the sqlite backend indexes.
package duckdb

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/rdf"
	"github.com/rdftab/rdftab/store"
)

// Package-specific error codes.
var (
	DuckDBQueryFailed = errors.MustNewCode("duckdb.query_failed")
)

func open() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.New(store.StoreOpenFailed, "failed to open duckdb", err)
	}
	return db, nil
}

// Query returns the triples in the Parquet file at path that match the
// pattern, preserving file order. Decoding uses the default (lossy)
// literal contract.
func Query(ctx context.Context, path string, p rdf.Pattern) ([]rdf.Triple, error) {
	db, err := open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := "SELECT subject, predicate, object FROM read_parquet(?)"
	args := []interface{}{path}

	var conds []string
	if p.Subject != nil {
		conds = append(conds, "subject = ?")
		args = append(args, codec.EncodeTerm(p.Subject))
	}
	if p.Predicate != nil {
		conds = append(conds, "predicate = ?")
		args = append(args, codec.EncodeTerm(p.Predicate))
	}
	if p.Object != nil {
		conds = append(conds, "object = ?")
		args = append(args, codec.EncodeTerm(p.Object))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(DuckDBQueryFailed, "failed to query parquet file", err).AddContext("path", path)
	}
	defer rows.Close()

	var out []rdf.Triple
	for rows.Next() {
		var r codec.Row
		if err := rows.Scan(&r.Subject, &r.Predicate, &r.Object); err != nil {
			return nil, errors.New(DuckDBQueryFailed, "failed to scan result row", err)
		}
		out = append(out, codec.Decode(r))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(DuckDBQueryFailed, "failed while iterating results", err)
	}
	return out, nil
}

// Count returns the triple count of the Parquet file at path.
func Count(ctx context.Context, path string) (int64, error) {
	db, err := open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int64
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM read_parquet(?)", path).Scan(&n); err != nil {
		return 0, errors.New(DuckDBQueryFailed, "failed to count rows", err).AddContext("path", path)
	}
	return n, nil
}
