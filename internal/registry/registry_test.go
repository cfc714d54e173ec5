package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronehub/fpv-mini/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-fake-b", func() Game { return &fakeGame{id: "zz-fake-b"} })
	Register("zz-fake-a", func() Game { return &fakeGame{id: "zz-fake-a"} })

	assert.True(t, Exists("zz-fake-a"))
	assert.False(t, Exists("zz-missing"))

	g, err := Create("zz-fake-a")
	require.NoError(t, err)
	assert.Equal(t, "zz-fake-a", g.ID())

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz-fake-b" {
			assert.Equal(t, "Fake zz-fake-b", info.Title)
		}
	}
	assert.IsIncreasing(t, ids)
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("zz-missing")
	assert.Error(t, err)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &fakeGame{id: "zz-dup"} })
	assert.Panics(t, func() {
		Register("zz-dup", func() Game { return &fakeGame{id: "zz-dup"} })
	})
}
