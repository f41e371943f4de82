package parquet

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdftab/rdftab/codec"
)

func TestGetCompressionCodec(t *testing.T) {
	tests := []struct {
		name        string
		compression string
		expectError bool
	}{
		{"Default", "", false},
		{"None", "none", false},
		{"Uncompressed", "uncompressed", false},
		{"Snappy", "snappy", false},
		{"Gzip", "gzip", false},
		{"GZ", "gz", false},
		{"Brotli", "brotli", false},
		{"LZ4", "lz4", false},
		{"ZSTD", "zstd", false},
		{"MixedCase", "SNAPPY", false},
		{"Invalid", "bzip9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetCompressionCodec(tt.compression)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func sampleRows(n int) []codec.Row {
	rows := make([]codec.Row, n)
	for i := range rows {
		rows[i] = codec.Row{
			Subject:   fmt.Sprintf("<ex:s%d>", i),
			Predicate: "<ex:p>",
			Object:    fmt.Sprintf("%q", fmt.Sprintf("value %d", i)),
		}
	}
	return rows
}

func readAll(t *testing.T, path string, batchSize int64) []codec.Row {
	t.Helper()
	r, err := NewReader(path, batchSize)
	require.NoError(t, err)
	defer r.Close()

	var got []codec.Row
	require.NoError(t, r.Read(context.Background(), func(batch []codec.Row) error {
		got = append(got, batch...)
		return nil
	}))
	return got
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triples.parquet")
	rows := sampleRows(50)

	w, err := NewWriter(path, WriterOptions{Compression: "snappy"})
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), rows[:30]))
	require.NoError(t, w.Write(context.Background(), rows[30:]))
	require.NoError(t, w.Close())

	assert.Equal(t, rows, readAll(t, path, 0))
}

func TestReadBatchSizeInvariance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triples.parquet")
	rows := sampleRows(25)

	w, err := NewWriter(path, WriterOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), rows))
	require.NoError(t, w.Close())

	for _, batchSize := range []int64{1, 7, 25, 100} {
		t.Run(fmt.Sprintf("batchSize=%d", batchSize), func(t *testing.T) {
			assert.Equal(t, rows, readAll(t, path, batchSize))
		})
	}
}

func TestWriterRejectsUnknownCompression(t *testing.T) {
	_, err := NewWriter(filepath.Join(t.TempDir(), "x.parquet"), WriterOptions{Compression: "bzip9"})
	require.Error(t, err)
}

func TestWriterClosedRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.parquet")
	w, err := NewWriter(path, WriterOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.Write(context.Background(), sampleRows(1))
	require.Error(t, err)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.parquet"), 10)
	require.Error(t, err)
}

func TestEmptyWriteProducesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	w, err := NewWriter(path, WriterOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), nil))
	require.NoError(t, w.Close())

	assert.Empty(t, readAll(t, path, 10))
}
