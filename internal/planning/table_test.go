package planning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shardctl/internal/config"
)

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name       string
		areas      []config.Area
		shardCount int
		problems   []string
	}{
		{
			name:       "valid example",
			areas:      exampleAreas(),
			shardCount: 2,
		},
		{
			name: "duplicate label",
			areas: []config.Area{
				{Label: "relay", Path: "tests/relay", Shard: 1},
				{Label: "relay", Path: "tests/topi", Shard: 1},
			},
			shardCount: 1,
			problems:   []string{`area label "relay" is declared twice`},
		},
		{
			name: "nested paths",
			areas: []config.Area{
				{Label: "relay", Path: "tests/relay", Shard: 1},
				{Label: "relay-op", Path: "tests/relay/op/", Shard: 2},
			},
			shardCount: 2,
			problems:   []string{`areas "relay" and "relay-op" overlap (tests/relay, tests/relay/op/)`},
		},
		{
			name: "same path twice",
			areas: []config.Area{
				{Label: "a", Path: "tests/x", Shard: 1},
				{Label: "b", Path: "./tests/x", Shard: 1},
			},
			shardCount: 1,
			problems:   []string{`areas "a" and "b" overlap (tests/x, ./tests/x)`},
		},
		{
			name: "shard out of range and empty shard",
			areas: []config.Area{
				{Label: "a", Path: "tests/a", Shard: 1},
				{Label: "b", Path: "tests/b", Shard: 4},
			},
			shardCount: 3,
			problems: []string{
				`area "b" maps to shard 4, outside 1..3`,
				"shard 2 has no areas",
				"shard 3 has no areas",
			},
		},
		{
			name: "static label shaped like a fan-out group",
			areas: []config.Area{
				{Label: "ops", Path: "tests/ops", Shard: 1, FanOut: true},
				{Label: "ops-1", Path: "tests/ops_extra", Shard: 1},
				{Label: "ops-x", Path: "tests/ops_x", Shard: 1},
				{Label: "ops-01", Path: "tests/ops_01", Shard: 1},
			},
			shardCount: 1,
			problems:   []string{`area label "ops-1" collides with a group of fan-out area "ops"`},
		},
		{
			name: "labels unsafe as file names",
			areas: []config.Area{
				{Label: "relay/op", Path: "tests/relay", Shard: 1},
				{Label: "relay op", Path: "tests/topi", Shard: 1},
				{Label: "relay_op", Path: "tests/ops", Shard: 1},
			},
			shardCount: 1,
			problems: []string{
				`area label "relay/op" contains '/'`,
				`area label "relay op" contains ' '`,
			},
		},
		{
			name:       "missing label and path",
			areas:      []config.Area{{Shard: 1}},
			shardCount: 1,
			problems:   []string{"area #1 has no label", `area "" has no path`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTable(tt.areas, tt.shardCount).Validate()
			if len(tt.problems) == 0 {
				require.NoError(t, err)
				return
			}
			var tableErr *TableError
			require.True(t, errors.As(err, &tableErr))
			assert.Equal(t, tt.problems, tableErr.Problems)
		})
	}
}

func TestTable_Lookups(t *testing.T) {
	table := NewTable(exampleAreas(), 2)

	assert.Equal(t, []int{1, 2}, table.Shards())
	assert.True(t, table.Declared(2))
	assert.False(t, table.Declared(0))
	assert.False(t, table.Declared(3))

	shard2 := table.AreasFor(2)
	require.Len(t, shard2, 3)
	assert.Equal(t, "area3", shard2[0].Label)
	assert.Equal(t, "area5", shard2[2].Label)

	fanOut := table.FanOutAreas()
	require.Len(t, fanOut, 1)
	assert.Equal(t, "area4", fanOut[0].Label)

	area, ok := table.Area("area2")
	require.True(t, ok)
	assert.Equal(t, 1, area.Shard)
	_, ok = table.Area("missing")
	assert.False(t, ok)
}
