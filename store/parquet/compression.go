package parquet

import (
	"strings"

	"github.com/apache/arrow-go/v18/parquet/compress"

	"github.com/rdftab/rdftab/pkg/errors"
)

// Package-specific error codes for compression handling.
var (
	ParquetUnsupportedCompression = errors.MustNewCode("parquet.unsupported_compression")
)

// GetCompressionCodec maps a compression name to a Parquet codec.
func GetCompressionCodec(compression string) (compress.Compression, error) {
	switch strings.ToLower(compression) {
	case "", "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip", "gz":
		return compress.Codecs.Gzip, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "lz4":
		return compress.Codecs.Lz4, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	default:
		return compress.Codecs.Uncompressed,
			errors.New(ParquetUnsupportedCompression, "unsupported compression type", nil).AddContext("compression", compression)
	}
}
