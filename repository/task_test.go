package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskFilterNormalize(t *testing.T) {
	cases := []struct {
		name   string
		in     TaskFilter
		limit  int
		offset int
	}{
		{"defaults", TaskFilter{}, MaxListLimit, 0},
		{"too large", TaskFilter{Limit: 500, Offset: 20}, MaxListLimit, 20},
		{"negative", TaskFilter{Limit: -1, Offset: -5}, MaxListLimit, 0},
		{"in range", TaskFilter{Limit: 25, Offset: 50}, 25, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.Equal(t, tc.limit, got.Limit)
			assert.Equal(t, tc.offset, got.Offset)
		})
	}
}
