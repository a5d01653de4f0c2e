package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metric is one display-ready entry of a MetricRecord.
type Metric struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MetricGroup is a typed category of metrics that renders to ordered entries.
type MetricGroup interface {
	GroupName() string
	Entries() []Metric
}

// MetricRecord is the flat, ordered result of an analysis. Keys are unique
// across every merged group.
type MetricRecord struct {
	entries []Metric
	index   map[string]int
	groups  []string
}

func NewMetricRecord() *MetricRecord {
	return &MetricRecord{index: make(map[string]int)}
}

// Merge appends every entry of group. It fails without modifying the record
// if any key is already present or repeated within the group.
func (r *MetricRecord) Merge(group MetricGroup) error {
	entries := group.Entries()
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := r.index[e.Key]; ok {
			return fmt.Errorf("%w: %q redefined by %s", ErrDuplicateMetric, e.Key, group.GroupName())
		}
		if _, ok := seen[e.Key]; ok {
			return fmt.Errorf("%w: %q repeated in %s", ErrDuplicateMetric, e.Key, group.GroupName())
		}
		seen[e.Key] = struct{}{}
	}
	for _, e := range entries {
		r.index[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	r.groups = append(r.groups, group.GroupName())
	return nil
}

func (r *MetricRecord) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.entries[i].Value, true
}

// Value returns the metric or def when absent.
func (r *MetricRecord) Value(key, def string) string {
	if v, ok := r.Get(key); ok {
		return v
	}
	return def
}

func (r *MetricRecord) Entries() []Metric {
	if r == nil {
		return nil
	}
	out := make([]Metric, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *MetricRecord) Groups() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.groups...)
}

func (r *MetricRecord) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// MarshalJSON renders the record as an object preserving merge order.
func (r *MetricRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a record from its object form. Key order follows
// the encoded document.
func (r *MetricRecord) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metric record: expected object")
	}
	*r = MetricRecord{index: make(map[string]int)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if _, dup := r.index[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateMetric, key)
		}
		r.index[key] = len(r.entries)
		r.entries = append(r.entries, Metric{Key: key, Value: value})
	}
	_, err = dec.Token()
	return err
}
