package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		opts        *Options
		wantType    PatternType
		wantErr     bool
	}{
		{name: "glob", pattern: "*.csv", patternType: Glob, wantType: Glob},
		{name: "regex", pattern: "^tools_\\d+\\.csv$", patternType: Regex, wantType: Regex},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob", pattern: "[", patternType: Glob, wantErr: true},
		{name: "auto glob", pattern: "*.parquet", patternType: Auto, wantType: Glob},
		{name: "auto regex", pattern: "^export\\d+", patternType: Auto, wantType: Regex},
		{name: "unsupported", pattern: "x", patternType: PatternType(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		typ     PatternType
		opts    *Options
		input   string
		want    bool
	}{
		{"glob match", "*.csv", Glob, nil, "tools.csv", true},
		{"glob case sensitive", "*.csv", Glob, nil, "TOOLS.CSV", false},
		{"glob case insensitive", "*.csv", Glob, &Options{CaseInsensitive: true}, "TOOLS.CSV", true},
		{"glob no match", "*.csv", Glob, nil, "tools.parquet", false},
		{"regex anchored", "tools_\\d+", Regex, &Options{Anchored: true}, "tools_12", true},
		{"regex anchored rejects suffix", "tools_\\d+", Regex, &Options{Anchored: true}, "tools_12.csv", false},
		{"regex case insensitive", "^ab", Regex, &Options{CaseInsensitive: true}, "ABc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.typ, tt.pattern, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatchAll(t *testing.T) {
	m, err := New(Glob, "*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "c.csv"}, m.MatchAll("a.csv", "b.txt", "c.csv"))
	assert.Equal(t, []string{}, m.MatchAll())
}

func TestParseList(t *testing.T) {
	mm, err := ParseList("*.csv, ,^export_\\d+\\.tsv$", &Options{CaseInsensitive: true})
	require.NoError(t, err)

	assert.True(t, mm.Match("a.CSV"))
	assert.True(t, mm.Match("EXPORT_1.tsv"))
	assert.False(t, mm.Match("notes.md"))
	assert.Equal(t, []string{"a.csv", "export_2.tsv"}, mm.MatchAll("a.csv", "a.csv", "export_2.tsv", "b.md"))

	_, err = ParseList(" , ")
	assert.Error(t, err)

	_, err = ParseList("[")
	assert.Error(t, err)
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(9).String())
}
