// Package provenance records which source supplied each field of a merged
// gold record.
package provenance

import (
	"os"
	"slices"
	"sort"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Provenance describes where one merged field value came from.
type Provenance struct {
	Source    string   `yaml:"source" json:"source"`
	Field     string   `yaml:"field" json:"field"`
	Value     any      `yaml:"value,omitempty" json:"value,omitempty"`
	Policy    string   `yaml:"policy,omitempty" json:"policy,omitempty"`
	Timestamp utc.Time `yaml:"timestamp" json:"timestamp"`
}

// Record is the provenance of one gold record.
type Record struct {
	Key     string                `yaml:"key" json:"key"`
	Sources []string              `yaml:"sources" json:"sources"`
	Fields  map[string]Provenance `yaml:"fields" json:"fields"`
}

// Map holds provenance per gold record key.
type Map map[string]*Record

// Tracker collects provenance while records are merged.
type Tracker interface {
	// Track records the source that supplied field of the record with key.
	Track(key string, p Provenance)

	// TrackSources records the contributing sources of the record with key.
	TrackSources(key string, sources []string)

	// FindByField returns the provenance of one field.
	FindByField(key, field string) (Provenance, bool)

	// FindByRecord returns the provenance of a record.
	FindByRecord(key string) (*Record, bool)

	// Map returns a copy of everything tracked.
	Map() Map

	// Clear removes all provenance data
	Clear()
}

type tracker struct {
	records Map
	enabled bool
}

// NewTracker creates a tracker. A disabled tracker records nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		records: make(Map),
		enabled: enabled,
	}
}

func (t *tracker) record(key string) *Record {
	rec, ok := t.records[key]
	if !ok {
		rec = &Record{Key: key, Sources: []string{}, Fields: map[string]Provenance{}}
		t.records[key] = rec
	}
	return rec
}

// Track records the source that supplied a field.
func (t *tracker) Track(key string, p Provenance) {
	if !t.enabled {
		return
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = utc.Now()
	}
	t.record(key).Fields[p.Field] = p
}

// TrackSources records the sorted, distinct contributing sources.
func (t *tracker) TrackSources(key string, sources []string) {
	if !t.enabled {
		return
	}
	rec := t.record(key)
	merged := append(slices.Clone(rec.Sources), sources...)
	sort.Strings(merged)
	rec.Sources = slices.Compact(merged)
}

func (t *tracker) FindByField(key, field string) (Provenance, bool) {
	rec, ok := t.records[key]
	if !ok {
		return Provenance{}, false
	}
	p, ok := rec.Fields[field]
	return p, ok
}

func (t *tracker) FindByRecord(key string) (*Record, bool) {
	rec, ok := t.records[key]
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

// Map returns a deep copy, or nil when tracking is disabled.
func (t *tracker) Map() Map {
	if !t.enabled {
		return nil
	}
	out := make(Map, len(t.records))
	for k, v := range t.records {
		out[k] = v.clone()
	}
	return out
}

func (t *tracker) Clear() {
	t.records = make(Map)
}

func (r *Record) clone() *Record {
	fields := make(map[string]Provenance, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return &Record{Key: r.Key, Sources: slices.Clone(r.Sources), Fields: fields}
}

// File is the provenance document written next to the gold table.
type File struct {
	GeneratedAt utc.Time `yaml:"generated_at" json:"generated_at"`
	Records     []Record `yaml:"records" json:"records"`
}

// NewFile flattens m into a File ordered by record key.
func NewFile(m Map) *File {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := &File{GeneratedAt: utc.Now(), Records: make([]Record, 0, len(keys))}
	for _, k := range keys {
		f.Records = append(f.Records, *m[k])
	}
	return f
}

// Map rebuilds the keyed form of f.
func (f *File) Map() Map {
	m := make(Map, len(f.Records))
	for i := range f.Records {
		rec := f.Records[i]
		m[rec.Key] = &rec
	}
	return m
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(f, yaml.Indent(2), yaml.IndentSequence(false))
}

// Load reads a provenance file. A missing file yields nil, nil.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &f, nil
}
