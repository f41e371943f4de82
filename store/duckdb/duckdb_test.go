package duckdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/rdf"
	"github.com/rdftab/rdftab/store/parquet"
)

func writeParquet(t *testing.T, rows []codec.Row) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triples.parquet")
	w, err := parquet.NewWriter(path, parquet.WriterOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), rows))
	require.NoError(t, w.Close())
	return path
}

func TestQueryPatternOverParquet(t *testing.T) {
	path := writeParquet(t, []codec.Row{
		{Subject: "<ex:John>", Predicate: "<rdf:type>", Object: "<ex:Person>"},
		{Subject: "<ex:Jane>", Predicate: "<rdf:type>", Object: "<ex:Person>"},
		{Subject: "<ex:John>", Predicate: "<ex:name>", Object: `"John Doe"`},
	})

	ctx := context.Background()

	all, err := Query(ctx, path, rdf.Pattern{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	people, err := Query(ctx, path, rdf.Pattern{Predicate: quad.IRI("rdf:type")})
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, quad.IRI("ex:John"), people[0].Subject)

	names, err := Query(ctx, path, rdf.Pattern{
		Subject: quad.IRI("ex:John"),
		Object:  quad.String("John Doe"),
	})
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, quad.IRI("ex:name"), names[0].Predicate)

	none, err := Query(ctx, path, rdf.Pattern{Subject: quad.IRI("ex:Nobody")})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCount(t *testing.T) {
	path := writeParquet(t, []codec.Row{
		{Subject: "<ex:a>", Predicate: "<ex:p>", Object: `"1"`},
		{Subject: "<ex:b>", Predicate: "<ex:p>", Object: `"2"`},
	})

	n, err := Count(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestQueryMissingFile(t *testing.T) {
	_, err := Query(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"), rdf.Pattern{})
	require.Error(t, err)
}
