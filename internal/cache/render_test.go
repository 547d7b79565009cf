package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"union-generator/internal/gen"
	"union-generator/internal/model"
)

func union(caseName string) *model.Union {
	return &model.Union{
		Name:          "Shape",
		QualifiedName: "example.com/shapes.Shape",
		Cases:         []model.Case{{Name: caseName, TypeName: caseName}},
	}
}

func TestRenderCache(t *testing.T) {
	c, err := NewRenderCache(2, "uniongen")
	require.NoError(t, err)

	arts := []gen.Artifact{{Key: "k", Filename: "shape_union.gen.go", Content: []byte("x")}}
	c.Add(union("Circle"), arts)

	got, ok := c.Get(union("Circle"))
	require.True(t, ok, "equal models share an entry")
	assert.Equal(t, arts, got)

	_, ok = c.Get(union("Square"))
	assert.False(t, ok)

	c.Add(union("Square"), arts)
	c.Add(union("Hexagon"), arts)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(union("Circle"))
	assert.False(t, ok, "least recently used entry is evicted")
}

func TestRenderCache_KeyIncludesBuildTag(t *testing.T) {
	a, err := NewRenderCache(0, "uniongen")
	require.NoError(t, err)

	b, err := NewRenderCache(0, "other")
	require.NoError(t, err)

	assert.NotEqual(t, a.Key(union("Circle")), b.Key(union("Circle")))
	assert.Contains(t, a.Key(union("Circle")), gen.Version+"/uniongen/")
}

func TestRenderCache_Nil(t *testing.T) {
	var c *RenderCache

	c.Add(union("Circle"), nil)
	_, ok := c.Get(union("Circle"))
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
