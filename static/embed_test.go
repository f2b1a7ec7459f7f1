package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIsEmbedded(t *testing.T) {
	page, err := Index()
	require.NoError(t, err)
	assert.Contains(t, string(page), "/api/tasks/dashboard/")
}
