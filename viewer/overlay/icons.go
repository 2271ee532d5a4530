package overlay

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

//go:embed icons/*.png
var iconAssets embed.FS

// IconCategory identifies one of the five HUD panel icons, ordered
// left-to-right as displayed.
type IconCategory int

const (
	// IconX selects the X-axis camera view.
	IconX IconCategory = iota
	// IconY selects the Y-axis camera view.
	IconY
	// IconZ selects the Z-axis camera view.
	IconZ
	// IconOrbit selects the orbit camera.
	IconOrbit
	// IconFPS toggles the FPS readout.
	IconFPS

	// IconCategoryCount is the number of icon categories.
	IconCategoryCount
)

// String returns the category's asset-name prefix.
func (c IconCategory) String() string {
	switch c {
	case IconX:
		return "x"
	case IconY:
		return "y"
	case IconZ:
		return "z"
	case IconOrbit:
		return "orbit"
	default:
		return "fps"
	}
}

// IconVariant identifies the visual state of an icon.
type IconVariant int

const (
	// IconNormal is the resting state.
	IconNormal IconVariant = iota
	// IconHover is shown when the pointer is over the icon.
	IconHover
	// IconSelected is shown when the icon represents the active camera mode.
	IconSelected

	// IconVariantCount is the number of icon variants.
	IconVariantCount
)

// String returns the variant's asset-name suffix.
func (v IconVariant) String() string {
	switch v {
	case IconHover:
		return "hover"
	case IconSelected:
		return "selected"
	default:
		return "normal"
	}
}

// IconCache holds the decoded HUD icon images, one per (category, variant)
// pair. The cache is constructed once, populated eagerly, and immutable
// thereafter — images are only referenced, never reloaded or mutated.
// Pass the cache by reference to every component that needs it; there is no
// package-level singleton.
type IconCache struct {
	images [IconCategoryCount][IconVariantCount]image.Image
}

// NewIconCache decodes all 15 embedded icon assets, using a worker pool to
// decode in parallel. Any missing or undecodable asset is a fatal
// initialization error: the HUD panel cannot render without its full icon
// set.
//
// Returns:
//   - *IconCache: the populated cache
//   - error: error if any asset fails to load or decode
func NewIconCache() (*IconCache, error) {
	cache := &IconCache{}

	type result struct {
		cat IconCategory
		v   IconVariant
		img image.Image
		err error
	}
	results := make([]result, 0, int(IconCategoryCount)*int(IconVariantCount))
	for cat := IconCategory(0); cat < IconCategoryCount; cat++ {
		for v := IconVariant(0); v < IconVariantCount; v++ {
			results = append(results, result{cat: cat, v: v})
		}
	}

	pool := worker.NewDynamicWorkerPool(len(results), len(results), 1*time.Second)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		r := &results[i]
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				name := fmt.Sprintf("icons/%s_%s.png", r.cat, r.v)
				data, err := iconAssets.ReadFile(name)
				if err != nil {
					r.err = fmt.Errorf("failed to read icon asset %s: %w", name, err)
					return nil, r.err
				}
				img, _, err := image.Decode(bytes.NewReader(data))
				if err != nil {
					r.err = fmt.Errorf("failed to decode icon asset %s: %w", name, err)
					return nil, r.err
				}
				r.img = img
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		cache.images[r.cat][r.v] = r.img
	}
	return cache, nil
}

// Image returns the cached image for a (category, variant) pair.
//
// Parameters:
//   - cat: the icon category
//   - v: the icon variant
//
// Returns:
//   - image.Image: the cached image
func (c *IconCache) Image(cat IconCategory, v IconVariant) image.Image {
	return c.images[cat][v]
}

// IconSize returns the pixel dimensions of the icon images. All assets share
// the same dimensions; the normal X icon is taken as representative.
//
// Returns:
//   - width, height: icon dimensions in pixels
func (c *IconCache) IconSize() (width, height int) {
	b := c.images[IconX][IconNormal].Bounds()
	return b.Dx(), b.Dy()
}
