package jsoncodec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.Serializer[struct{}] = (*Codec[struct{}])(nil)

// utf8BOM is stripped from documents before parsing.
var utf8BOM = []byte("\xef\xbb\xbf")

// emptyObject is the document that decodes to a shape's defaults.
const emptyObject = "{}"

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Codec encodes and decodes values of shape T as JSON.
type Codec[T any] struct {
	newDefault func() *T
}

// New creates a codec. newDefault returns a fresh value holding the shape's
// defaults; if nil, the zero value of T is the default.
//
// Defaults travel through encoding/json, so values newDefault sets on fields
// encoding/json skips (unexported or tagged "-") are not kept by Decode.
func New[T any](newDefault func() *T) *Codec[T] {
	return &Codec[T]{newDefault: newDefault}
}

// Decode parses data into a new value of T.
// A leading UTF-8 byte order mark is ignored.
func (c *Codec[T]) Decode(data []byte) (*T, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrDecode)
	}

	doc := gjson.ParseBytes(data)
	if doc.Type == gjson.Null {
		return nil, nil
	}
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", domain.ErrDecode, kindOf(doc))
	}

	base, err := c.defaults()
	if err != nil {
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal(overlay(base, doc), v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return v, nil
}

// Encode renders v as indented JSON without top-level null members.
func (c *Codec[T]) Encode(v *T) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: cannot encode nil value", domain.ErrInvalidInput)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshalling value: %w", err)
	}

	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		raw = withoutNulls(doc)
	}
	return pretty.PrettyOptions(raw, prettyOptions), nil
}

// defaults returns the JSON object holding the shape's default members.
func (c *Codec[T]) defaults() (gjson.Result, error) {
	if c.newDefault == nil {
		return gjson.Parse(emptyObject), nil
	}

	raw, err := json.Marshal(c.newDefault())
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshalling defaults: %w", err)
	}
	base := gjson.ParseBytes(raw)
	if !base.IsObject() {
		// Shapes that do not encode as objects (nil maps) have no members to keep.
		return gjson.Parse(emptyObject), nil
	}
	return base, nil
}

// overlay writes base with every non-null member of doc replacing the member
// of the same name. Members only present in doc are appended in doc order,
// so encoding/json's last-wins rule also applies them over case-insensitive
// matches in base.
func overlay(base, doc gjson.Result) []byte {
	members := make(map[string]gjson.Result)
	var order []string
	doc.ForEach(func(key, value gjson.Result) bool {
		if _, seen := members[key.Str]; !seen {
			order = append(order, key.Str)
		}
		members[key.Str] = value
		return true
	})

	var w objectWriter
	used := make(map[string]bool, len(members))
	base.ForEach(func(key, value gjson.Result) bool {
		if m, ok := members[key.Str]; ok && m.Type != gjson.Null {
			value = m
		}
		used[key.Str] = true
		w.member(key.Str, value.Raw)
		return true
	})
	for _, key := range order {
		if used[key] || members[key].Type == gjson.Null {
			continue
		}
		w.member(key, members[key].Raw)
	}
	return w.bytes()
}

// withoutNulls rewrites an object dropping its null members.
func withoutNulls(doc gjson.Result) []byte {
	var w objectWriter
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Null {
			w.member(key.Str, value.Raw)
		}
		return true
	})
	return w.bytes()
}

// objectWriter builds a compact JSON object from raw member values.
type objectWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *objectWriter) member(key, raw string) {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	// Marshalling a string cannot fail.
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.WriteString(raw)
	w.n++
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte(emptyObject)
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

// kindOf names the JSON kind of a non-object document.
func kindOf(doc gjson.Result) string {
	switch {
	case doc.IsArray():
		return "array"
	case doc.Type == gjson.String:
		return "string"
	case doc.Type == gjson.Number:
		return "number"
	case doc.Type == gjson.True, doc.Type == gjson.False:
		return "boolean"
	default:
		return doc.Type.String()
	}
}
