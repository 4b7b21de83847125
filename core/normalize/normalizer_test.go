package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := New().Normalize(`<h1>Research</h1>
<p>See <a href="/en/publications.html">publications</a>.</p>`)
	require.NoError(t, err)

	assert.Contains(t, got, "# Research")
	assert.Contains(t, got, "[publications](/en/publications.html)")
	assert.NotContains(t, got, "<p>")
}
