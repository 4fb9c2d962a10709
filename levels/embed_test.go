package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	src := `
name: test
blocks:
  - min: [-1, -1, -1]
    max: [1, 0, 1]
entities:
  - prefab: player.yaml
  - prefab: torch.yaml
    name: torch_a
    position: [0, 0, 0]
    yaw: 0
`
	lvl, err := ParseLevel("test.yaml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "test", lvl.Name)
	require.Len(t, lvl.Blocks, 1)
	assert.Equal(t, 0.0, lvl.Blocks[0].Max[1])
	require.Len(t, lvl.Entities, 2)

	assert.Nil(t, lvl.Entities[0].Position)
	assert.Nil(t, lvl.Entities[0].Yaw)

	// an explicit origin placement is distinct from no placement
	require.NotNil(t, lvl.Entities[1].Position)
	require.NotNil(t, lvl.Entities[1].Yaw)
	assert.Equal(t, "torch_a", lvl.Entities[1].Name)
}

func TestParseLevelErrors(t *testing.T) {
	_, err := ParseLevel("bad.yaml", []byte("entities:\n  - name: orphan\n"))
	assert.ErrorContains(t, err, "no prefab")

	_, err = ParseLevel("bad.yaml", []byte("blocks: {"))
	assert.ErrorContains(t, err, "levels: unmarshal bad.yaml")
}

func TestLoadCourtyard(t *testing.T) {
	lvl, err := LoadLevelFromFS("courtyard.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, lvl.Blocks)

	prefabs := map[string]int{}
	for _, e := range lvl.Entities {
		prefabs[e.Prefab]++
	}
	assert.Equal(t, 1, prefabs["player.yaml"])
	assert.Equal(t, 1, prefabs["camera.yaml"])
	assert.GreaterOrEqual(t, prefabs["torch.yaml"], 1)
	assert.GreaterOrEqual(t, prefabs["weapon.yaml"], 1)

	_, err = LoadLevelFromFS("missing.yaml")
	assert.Error(t, err)
}
