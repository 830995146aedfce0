package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	assert.Equal(t, []ID{CSVID, MarkdownID}, IDs())
	assert.True(t, CSVID.IsValid())
	assert.False(t, ID("ftp").IsValid())
	assert.Equal(t, "markdown", MarkdownID.String())
}
