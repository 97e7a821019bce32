// Package payload extracts a single flat field map from an incoming request.
// JSON bodies are parsed as a JSON object; anything else is treated as a
// URL-encoded form, keeping the first value per field. The resulting Fields is
// the sole input to every creation handler, so no content-type branching
// happens downstream of extraction.
package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Fields is a flat mapping from field name to raw value. Typed getters apply
// the workflow defaults (zero for absent/empty numerics) and record the first
// malformed value; check Err once after reading all fields.
type Fields struct {
	values map[string]any
	err    error
}

// FromRequest builds Fields from the request body. An empty body yields an
// empty mapping in both modes; a malformed JSON body is an error.
func FromRequest(c *gin.Context) (*Fields, error) {
	values := make(map[string]any)

	if strings.Contains(c.ContentType(), "application/json") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &values); err != nil {
				return nil, fmt.Errorf("invalid JSON body: %w", err)
			}
		}
		return &Fields{values: values}, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	for key, vals := range c.Request.PostForm {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	return &Fields{values: values}, nil
}

// Err returns the first conversion error recorded by a typed getter.
func (f *Fields) Err() error {
	return f.err
}

// Has reports whether the field was present in the request.
func (f *Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// String returns the field as a string, or "" when absent.
func (f *Fields) String(key string) string {
	v, ok := f.values[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// StringOr returns the field as a string, falling back to def when absent or empty.
func (f *Fields) StringOr(key, def string) string {
	if s := f.String(key); s != "" {
		return s
	}
	return def
}

// Int returns the field as an integer, defaulting to 0 when absent or empty.
func (f *Fields) Int(key string) int {
	v, ok := f.values[key]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		if val == "" {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			f.record(key, val)
			return 0
		}
		return n
	default:
		f.record(key, v)
		return 0
	}
}

// Decimal returns the field as a decimal amount, defaulting to zero when absent
// or empty.
func (f *Fields) Decimal(key string) decimal.Decimal {
	v, ok := f.values[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		if val == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			f.record(key, val)
			return decimal.Zero
		}
		return d
	default:
		f.record(key, v)
		return decimal.Zero
	}
}

// IDRef returns the field as an optional record reference. Absent, empty and
// zero values all mean "no reference" and yield nil.
func (f *Fields) IDRef(key string) *uint {
	n := f.Int(key)
	if n <= 0 {
		return nil
	}
	id := uint(n)
	return &id
}

func (f *Fields) record(key string, v any) {
	if f.err == nil {
		f.err = fmt.Errorf("field %q has invalid numeric value %v", key, v)
	}
}
