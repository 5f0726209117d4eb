package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ObjectID accepts both a plain string and the {"$oid": "..."} form the backend may emit.
type ObjectID string

func (id *ObjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '{' {
		var wrapped struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return fmt.Errorf("ObjectID: %w", err)
		}
		*id = ObjectID(wrapped.OID)
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("ObjectID: %w", err)
		}
		*id = ObjectID(s)
		return nil
	}
	*id = ObjectID(string(data))
	return nil
}

func (id ObjectID) String() string { return string(id) }

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is an optional point in time. null, "" and "N/A" decode to the zero value.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] != '"' {
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("Timestamp: unsupported value %s", data)
		}
		t.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseTimestamp(s)
	if !ok && s != "" && s != "N/A" {
		return fmt.Errorf("Timestamp: unrecognized format %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// ParseTimestamp tries the layouts the backend is known to produce.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Dimensions is the category-dependent attribute bag attached to a product.
// A nil bag is valid and behaves as empty.
type Dimensions map[string]any

// Float returns the numeric value stored under key. Numeric strings are accepted.
// The boolean reports whether the value is present, i.e. non-null and non-zero.
func (d Dimensions) Float(key string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	var f float64
	switch v := d[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f == 0 || f != f {
		return 0, false
	}
	return f, true
}

// String returns the textual value stored under key, or "" when absent.
func (d Dimensions) String(key string) string {
	if d == nil {
		return ""
	}
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether key holds a non-empty value.
func (d Dimensions) Has(key string) bool {
	if _, ok := d.Float(key); ok {
		return true
	}
	switch v := d[key].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	}
	return false
}

// Keys returns the keys Has reports present, sorted.
func (d Dimensions) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		if d.Has(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Product is the backend's product record as read by the front-end.
type Product struct {
	ID          ObjectID   `json:"_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Stock       float64    `json:"stock"`
	LastUpdated Timestamp  `json:"lastUpdated"`
	Imported    bool       `json:"imported"`
	SKU         string     `json:"sku,omitempty"`
	Company     string     `json:"company,omitempty"`
	CompanyCode string     `json:"companyCode,omitempty"`
	Dimensions  Dimensions `json:"dimensions"`
}

// NewProductInput is the payload of POST /products.
type NewProductInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
