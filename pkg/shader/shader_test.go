package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresParamOrder(t *testing.T) {
	a := Descriptor{Name: "x", Params: map[string]string{"a": "1", "b": "2"}}
	b := Descriptor{Name: "x", Params: map[string]string{"b": "2", "a": "1"}}
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Canonical(), b.Canonical())

	c := Descriptor{Name: "x", Params: map[string]string{"a": "1", "b": "3"}}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestKeyDependsOnDeclarations(t *testing.T) {
	a := Descriptor{Name: "x", Uniforms: []Variable{{"mat4", "m"}}}
	b := Descriptor{Name: "x", Attributes: []Variable{{"mat4", "m"}}}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestSkinningJointCount(t *testing.T) {
	assert.Equal(t, "1", Skinning(0, [3]float64{}, 64).Param("joints"))
	assert.Equal(t, "5", Skinning(5, [3]float64{}, 64).Param("joints"))
	assert.Equal(t, Skinning(5, [3]float64{0.1, 0.1, 0.1}, 64).Key(), Skinning(5, [3]float64{0.1, 0.1, 0.1}, 64).Key())
	assert.NotEqual(t, Skinning(5, [3]float64{}, 64).Key(), Skinning(6, [3]float64{}, 64).Key())
}

func TestCacheRendersOncePerKey(t *testing.T) {
	cache := NewCache()
	assert.Equal(t, 0, cache.Len())

	first, err := cache.Get(Skinning(5, [3]float64{0.1, 0.1, 0.1}, 64))
	require.NoError(t, err)
	again, err := cache.Get(Skinning(5, [3]float64{0.1, 0.1, 0.1}, 64))
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, cache.Len())

	assert.Contains(t, first.VertexSource, "const int N = 5;")
	assert.Contains(t, first.VertexSource, "uniform mat4 mat4ModelView;")
	assert.Contains(t, first.VertexSource, "in vec4 JointsWeight;")
	assert.Contains(t, first.FragmentSource, "const vec3 Ks = vec3(0.1000, 0.1000, 0.1000);")
	assert.Contains(t, first.FragmentSource, "const float Ns = 64.00;")

	other, err := cache.Get(Skinning(3, [3]float64{0.1, 0.1, 0.1}, 64))
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, cache.Len())

	_, err = cache.Get(Color())
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Len())
}

func TestCacheUnknownTemplate(t *testing.T) {
	_, err := NewCache().Get(Descriptor{Name: "missing"})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRegister(t *testing.T) {
	cache := NewCache()
	require.NoError(t, cache.Register("tint", "void main() { /* {{.Param \"tint\"}} */ }", "void main() {}"))

	p, err := cache.Get(Descriptor{Name: "tint", Params: map[string]string{"tint": "red"}})
	require.NoError(t, err)
	assert.Equal(t, "void main() { /* red */ }", p.VertexSource)

	require.NoError(t, cache.Register("tint", "void main() {}", "void main() {}"))
	assert.Equal(t, 0, cache.Len())

	assert.Error(t, cache.Register("broken", "{{.Param", ""))
}
