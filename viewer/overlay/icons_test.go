package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconCacheLoadsAllAssets(t *testing.T) {
	icons, err := NewIconCache()
	require.NoError(t, err)

	for cat := IconCategory(0); cat < IconCategoryCount; cat++ {
		for v := IconVariant(0); v < IconVariantCount; v++ {
			img := icons.Image(cat, v)
			require.NotNilf(t, img, "missing icon %s_%s", cat, v)
			b := img.Bounds()
			assert.Equalf(t, b.Dx(), b.Dy(), "icon %s_%s is not square", cat, v)
		}
	}

	w, h := icons.IconSize()
	assert.Equal(t, 24, w)
	assert.Equal(t, 24, h)
}

func TestIconCacheReturnsSameInstance(t *testing.T) {
	icons, err := NewIconCache()
	require.NoError(t, err)

	a := icons.Image(IconOrbit, IconSelected)
	b := icons.Image(IconOrbit, IconSelected)
	assert.True(t, a == b, "repeated lookups must return the cached instance")
}

func TestIconNames(t *testing.T) {
	tests := []struct {
		cat  IconCategory
		v    IconVariant
		want string
	}{
		{IconX, IconNormal, "x_normal"},
		{IconY, IconHover, "y_hover"},
		{IconZ, IconSelected, "z_selected"},
		{IconOrbit, IconNormal, "orbit_normal"},
		{IconFPS, IconSelected, "fps_selected"},
	}
	for _, tt := range tests {
		got := tt.cat.String() + "_" + tt.v.String()
		assert.Equal(t, tt.want, got)
	}
}
