// Package codec maps RDF triples to flat three-field text rows and back.
//
// Encoding uses the canonical term notation for every position: IRIs as
// <value>, blank nodes as _:id, literals double-quoted with an optional
// ^^<datatype> or @lang suffix. Decoding sniffs each field's shape in a
// fixed precedence order and never rejects a row: anything unrecognized
// degrades to a plain literal so bulk loads keep moving. The precedence is
// load-bearing — a literal whose text happens to look like <x> decodes as
// an IRI; that is an accepted limitation of the row format.
package codec

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/rdf"
)

// Package-specific error codes.
var (
	CodecInvalidBatchSize = errors.MustNewCode("codec.invalid_batch_size")
)

// Row is the flat encoding of one triple. Its position within a batch is
// its ordinal; rows carry no other relationship to each other.
type Row struct {
	Subject   string
	Predicate string
	Object    string
}

// Position identifies which field of a row a term came from. Decoding is
// position-aware only for predicates, which are never literals or blank
// nodes.
type Position int

const (
	Subject Position = iota
	Predicate
	Object
)

// EncodeTerm returns the canonical text notation of a term. Embedded quote
// characters in literals are not escaped; the decode side strips exactly
// the outer delimiters (see DecodeTerm).
func EncodeTerm(v quad.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case quad.IRI:
		return "<" + string(v) + ">"
	case quad.BNode:
		return "_:" + string(v)
	case quad.String:
		return `"` + string(v) + `"`
	case quad.LangString:
		return `"` + string(v.Value) + `"@` + v.Lang
	case quad.TypedString:
		return `"` + string(v.Value) + `"^^<` + string(v.Type) + `>`
	default:
		return v.String()
	}
}

// Encode converts one triple to a row. Pure and deterministic; the triple's
// invariants (predicate-as-IRI) are not re-validated here.
func Encode(t rdf.Triple) Row {
	return Row{
		Subject:   EncodeTerm(t.Subject),
		Predicate: EncodeTerm(t.Predicate),
		Object:    EncodeTerm(t.Object),
	}
}

// EncodeAll converts triples to rows, preserving order.
func EncodeAll(triples []rdf.Triple) []Row {
	rows := make([]Row, len(triples))
	for i, t := range triples {
		rows[i] = Encode(t)
	}
	return rows
}

// Decoder converts rows back to triples. The zero value implements the
// default (lossy) contract: literal datatype and language suffixes are
// dropped on decode. StrictLiterals opts into re-extracting them when the
// quoting is well formed; malformed shapes still fall back to the lossy
// rule rather than erroring.
type Decoder struct {
	StrictLiterals bool
}

// DecodeTerm decodes one row field. Precedence:
//
//  1. <...>  -> IRI of the enclosed text
//  2. predicate position, anything else -> IRI of the raw text
//  3. _:id   -> blank node
//  4. leading " or ' -> literal (see decodeLiteral)
//  5. anything else, including "" -> plain literal of the raw text
func (d Decoder) DecodeTerm(field string, pos Position) quad.Value {
	switch {
	case len(field) >= 2 && field[0] == '<' && field[len(field)-1] == '>':
		return quad.IRI(field[1 : len(field)-1])
	case pos == Predicate:
		return quad.IRI(field)
	case strings.HasPrefix(field, "_:"):
		return quad.BNode(field[2:])
	case field != "" && (field[0] == '"' || field[0] == '\''):
		return d.decodeLiteral(field)
	default:
		return quad.String(field)
	}
}

// decodeLiteral strips the leading quote and truncates at the last quote
// character of either kind — not a matched-pair check. Whatever trails the
// last quote (a ^^<datatype> or @lang suffix) is dropped, so those literals
// reload as plain strings. Strict mode recovers the suffix when the outer
// quotes match.
func (d Decoder) decodeLiteral(field string) quad.Value {
	if d.StrictLiterals {
		if v, ok := parseStrictLiteral(field); ok {
			return v
		}
	}
	body := field[1:]
	if i := strings.LastIndexAny(body, `"'`); i >= 0 {
		body = body[:i]
	}
	return quad.String(body)
}

// parseStrictLiteral requires a closing quote matching the opening one and
// a recognized suffix shape; otherwise it reports false and the caller
// degrades to the lossy rule.
func parseStrictLiteral(field string) (quad.Value, bool) {
	open := field[0]
	body := field[1:]
	i := strings.LastIndexByte(body, open)
	if i < 0 {
		return nil, false
	}
	lex, suffix := body[:i], body[i+1:]
	switch {
	case suffix == "":
		return quad.String(lex), true
	case strings.HasPrefix(suffix, "@") && len(suffix) > 1:
		return quad.LangString{Value: quad.String(lex), Lang: suffix[1:]}, true
	case strings.HasPrefix(suffix, "^^<") && strings.HasSuffix(suffix, ">") && len(suffix) > 4:
		return quad.TypedString{Value: quad.String(lex), Type: quad.IRI(suffix[3 : len(suffix)-1])}, true
	default:
		return nil, false
	}
}

// Decode converts one row to a triple. Never fails: malformed fields take
// the plain-literal fallback.
func (d Decoder) Decode(r Row) rdf.Triple {
	return rdf.Triple{
		Subject:   d.DecodeTerm(r.Subject, Subject),
		Predicate: d.DecodeTerm(r.Predicate, Predicate),
		Object:    d.DecodeTerm(r.Object, Object),
	}
}

// DecodeBatch converts rows to triples in chunks of batchSize. The batch
// size bounds peak row materialization only; any size >= 1 produces an
// identical, order-preserving result. Sizes below 1 are invalid input.
func (d Decoder) DecodeBatch(rows []Row, batchSize int) ([]rdf.Triple, error) {
	if batchSize < 1 {
		return nil, errors.Newf(CodecInvalidBatchSize, "batch size must be >= 1, got %d", batchSize)
	}
	out := make([]rdf.Triple, 0, len(rows))
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		for _, r := range rows[start:end] {
			out = append(out, d.Decode(r))
		}
	}
	return out, nil
}

// DecodeInto decodes rows batch by batch and inserts each triple into the
// destination graph one at a time, in row order.
func (d Decoder) DecodeInto(g *rdf.Graph, rows []Row, batchSize int) error {
	triples, err := d.DecodeBatch(rows, batchSize)
	if err != nil {
		return err
	}
	for _, t := range triples {
		g.AddTriple(t)
	}
	return nil
}

// Package-level helpers using the default (lossy) decoder.

// DecodeTerm decodes one field with the default decoder.
func DecodeTerm(field string, pos Position) quad.Value {
	return Decoder{}.DecodeTerm(field, pos)
}

// Decode converts one row with the default decoder.
func Decode(r Row) rdf.Triple {
	return Decoder{}.Decode(r)
}

// DecodeBatch converts rows with the default decoder.
func DecodeBatch(rows []Row, batchSize int) ([]rdf.Triple, error) {
	return Decoder{}.DecodeBatch(rows, batchSize)
}
