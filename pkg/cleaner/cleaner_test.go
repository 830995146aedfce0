package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/cleaner"
	"github.com/agentstation/toolmap/pkg/records"
)

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name  string
		input records.Value
		want  *string
	}{
		{"query and fragment", records.String("http://example.com/page?x=1#top"), records.Ptr("https://example.com/page")},
		{"trailing slash", records.String("https://example.com/page/"), records.Ptr("https://example.com/page")},
		{"many trailing slashes", records.String("https://example.com/page///"), records.Ptr("https://example.com/page")},
		{"uppercase scheme and host", records.String("HTTP://Example.COM/Path"), records.Ptr("https://example.com/Path")},
		{"missing scheme", records.String("  notion.so  "), records.Ptr("https://notion.so")},
		{"fragment before query", records.String("https://a.io/x#frag?q=1"), records.Ptr("https://a.io/x")},
		{"other scheme kept", records.String("ftp://files.example.org/pub"), records.Ptr("ftp://files.example.org/pub")},
		{"colon slash slash in path", records.String("example.com/go/http://x"), records.Ptr("https://example.com/go/http://x")},
		{"internationalized host", records.String("https://Bücher.de/x/"), records.Ptr("https://xn--bcher-kva.de/x")},
		{"internationalized host with port", records.String("bücher.de:8443/x"), records.Ptr("https://xn--bcher-kva.de:8443/x")},
		{"blank", records.String("   "), nil},
		{"null", records.Null(), nil},
		{"list", records.List("https://a.io"), nil},
		{"no host", records.String("https://"), nil},
		{"bad host", records.String("http://exa mple.com"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleaner.CanonicalURL(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestCanonicalURLIdempotent(t *testing.T) {
	inputs := []string{
		"http://example.com/page?x=1#top",
		"https://example.com/page/",
		"Example.com",
		"HTTPS://WWW.Example.co.uk/a b/",
		"https://user@Host.io:8080/p//",
		"ftp://x.org/",
		"example.com/go/http://x",
		"https://a.io/%2F/",
		"http://bücher.de/x?q=1",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := cleaner.CanonicalURLString(in)
			require.NotNil(t, once)
			twice := cleaner.CanonicalURLString(*once)
			require.NotNil(t, twice)
			assert.Equal(t, *once, *twice)
		})
	}
}

func TestListify(t *testing.T) {
	tests := []struct {
		name  string
		input records.Value
		want  []string
	}{
		{"null", records.Null(), []string{}},
		{"empty string", records.String(""), []string{}},
		{"commas", records.String(" a, b ,,c , "), []string{"a", "b", "c"}},
		{"list", records.List(" x ", "", "y"), []string{"x", "y"}},
		{"list keeps commas", records.List("a, b"), []string{"a, b"}},
		{"order preserved", records.String("z,a,z"), []string{"z", "a", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleaner.Listify(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "")
		})
	}
}

func TestBool(t *testing.T) {
	for _, in := range []string{"true", "TRUE", " 1 ", "yes", "Y"} {
		assert.True(t, cleaner.Bool(records.String(in)), in)
	}
	for _, in := range []string{"false", "0", "no", "", "yep", "on"} {
		assert.False(t, cleaner.Bool(records.String(in)), in)
	}
	assert.False(t, cleaner.Bool(records.Null()))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Notion", cleaner.Text(records.String("  Notion\t")))
	assert.Equal(t, "", cleaner.Text(records.Null()))
	assert.Equal(t, "a, b", cleaner.Text(records.List("a", "b")))
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"apex", records.Ptr("https://example.com/page"), records.Ptr("example.com")},
		{"subdomain", records.Ptr("https://app.www.example.com"), records.Ptr("example.com")},
		{"multi-label suffix", records.Ptr("https://shop.example.co.uk/x"), records.Ptr("example.co.uk")},
		{"port", records.Ptr("https://api.example.io:8443"), records.Ptr("example.io")},
		{"ip", records.Ptr("https://127.0.0.1/x"), nil},
		{"single label", records.Ptr("https://localhost"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleaner.Domain(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
