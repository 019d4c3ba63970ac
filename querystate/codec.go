package querystate

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Encoding selects how multi-valued keys are written to a query string.
// A Codec uses exactly one encoding for both directions.
type Encoding int

const (
	// EncodingRepeated repeats the key: ?size=9&size=10
	EncodingRepeated Encoding = iota
	// EncodingComma joins the values of multi facets: ?size=9,10. Other keys
	// repeat, since only multi facets are split back apart on decode.
	EncodingComma
)

func (e Encoding) String() string {
	if e == EncodingComma {
		return "comma"
	}
	return "repeated"
}

// ParseEncoding accepts "repeated" (or "") and "comma".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repeated":
		return EncodingRepeated, nil
	case "comma":
		return EncodingComma, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

// Codec maps query strings to States and back. It holds no mutable state and
// is safe for concurrent use.
type Codec struct {
	encoding Encoding
	facets   Facets
}

func NewCodec(encoding Encoding, facets Facets) *Codec {
	return &Codec{encoding: encoding, facets: facets}
}

func (c *Codec) Encoding() Encoding {
	return c.encoding
}

func (c *Codec) Facets() Facets {
	return c.facets
}

// Decode parses a raw query string such as "?size=9&size=10&gender=men".
// It never fails: malformed escapes are kept as literal text and empty
// pieces are ignored.
func (c *Codec) Decode(rawQuery string) State {
	return c.DecodePairs(splitQuery(rawQuery))
}

// DecodeValues decodes url.Values as produced by net/url or gin.
func (c *Codec) DecodeValues(values url.Values) State {
	b := c.newBuilder()
	for _, k := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[k] {
			b.add(k, v, false)
		}
	}
	return b.state()
}

// DecodePairs decodes raw (key, value) occurrences. Repeated keys are
// coalesced into a list in first-seen order; a key seen once stays scalar.
func (c *Codec) DecodePairs(pairs []Pair) State {
	b := c.newBuilder()
	for _, p := range pairs {
		b.add(p.Key, p.Value, false)
	}
	return b.state()
}

// DecodeMap decodes a loosely typed object whose values are a string, a
// []string, a []any, or nil. Slices stay lists even with one element. Any
// other value is treated as plain text via fmt.Sprint.
func (c *Codec) DecodeMap(m map[string]any) State {
	b := c.newBuilder()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		switch v := m[k].(type) {
		case nil:
		case string:
			b.add(k, v, false)
		case []string:
			for _, s := range v {
				b.add(k, s, true)
			}
		case []any:
			for _, s := range v {
				if s != nil {
					b.add(k, fmt.Sprint(s), true)
				}
			}
		case Value:
			for _, s := range v.Values() {
				b.add(k, s, v.Kind() == KindList)
			}
		default:
			b.add(k, fmt.Sprint(v), false)
		}
	}
	return b.state()
}

// Encode serializes s deterministically: keys in sorted order, list order
// preserved, everything escaped with url.QueryEscape. The empty state encodes
// to "".
func (c *Codec) Encode(s State) string {
	var buf strings.Builder
	write := func(k, v string) {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(k))
		buf.WriteByte('=')
		buf.WriteString(v)
	}
	for _, k := range s.Keys() {
		v := s.Get(k)
		switch {
		case v.Kind() == KindList && c.encoding == EncodingComma && c.facets.IsMulti(k):
			parts := make([]string, 0, v.Len())
			for _, item := range v.Values() {
				parts = append(parts, url.QueryEscape(item))
			}
			write(k, strings.Join(parts, ","))
		default:
			for _, item := range v.Values() {
				write(k, url.QueryEscape(item))
			}
		}
	}
	return buf.String()
}

// Href joins path and the encoded state, omitting "?" for an empty state.
func (c *Codec) Href(path string, s State) string {
	q := c.Encode(s)
	if q == "" {
		return path
	}
	return path + "?" + q
}

// Canonical re-encodes a raw query string.
func (c *Codec) Canonical(rawQuery string) string {
	return c.Encode(c.Decode(rawQuery))
}

type builder struct {
	codec  *Codec
	order  []string
	values map[string][]string
	lists  map[string]bool
}

func (c *Codec) newBuilder() *builder {
	return &builder{
		codec:  c,
		values: make(map[string][]string),
		lists:  make(map[string]bool),
	}
}

func (b *builder) add(key, value string, asList bool) {
	if key == "" {
		return
	}
	pieces := []string{value}
	if b.codec.encoding == EncodingComma && b.codec.facets.IsMulti(key) {
		pieces = strings.Split(value, ",")
	}
	for _, p := range pieces {
		if p == "" {
			continue
		}
		cur, seen := b.values[key]
		if !seen {
			b.order = append(b.order, key)
		}
		if !slices.Contains(cur, p) {
			b.values[key] = append(cur, p)
		}
		if asList {
			b.lists[key] = true
		}
	}
}

func (b *builder) state() State {
	out := make(map[string]Value, len(b.order))
	for _, k := range b.order {
		vals := b.values[k]
		switch {
		case b.codec.facets.IsSingle(k):
			out[k] = Scalar(vals[0])
		case len(vals) == 1 && !b.lists[k]:
			out[k] = Scalar(vals[0])
		default:
			out[k] = List(vals...)
		}
	}
	return State{values: out}
}

// splitQuery is a tolerant query-string splitter: it accepts a leading "?",
// skips empty segments, and keeps text with bad escapes verbatim.
func splitQuery(raw string) []Pair {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}
	var pairs []Pair
	for _, seg := range strings.Split(raw, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		pairs = append(pairs, Pair{Key: unescape(k), Value: unescape(v)})
	}
	return pairs
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}
