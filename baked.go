package sprinkles

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// BakedTextureWidth is the sample count of every baked 1D lookup texture.
const BakedTextureWidth = 256

// CurveTextureCache deduplicates baked curve textures by content hash.
// A curve is baked at most once per distinct CacheKey for the lifetime of
// the cache; entries are never evicted, since eviction would invalidate
// handles held by live materials.
//
// The cache is single-writer: callers must treat GetOrCreate as one atomic
// check-bake-insert operation and not bake around it, or the dedup
// guarantee is lost.
type CurveTextureCache struct {
	textures map[uint64]*ebiten.Image
}

// NewCurveTextureCache returns an empty curve texture cache.
func NewCurveTextureCache() *CurveTextureCache {
	return &CurveTextureCache{textures: make(map[uint64]*ebiten.Image)}
}

// GetOrCreate returns the baked texture for the curve, baking it on first
// use. Structurally equal curves share one texture. Constant curves still
// bake if requested; callers normally check IsConstant first and use
// FallbackTexture instead.
func (c *CurveTextureCache) GetOrCreate(curve *CurveTexture) *ebiten.Image {
	key := curve.CacheKey()
	if img, ok := c.textures[key]; ok {
		return img
	}
	img := ebiten.NewImage(BakedTextureWidth, 1)
	img.WritePixels(BakeCurvePixels(curve))
	c.textures[key] = img
	return img
}

// Get returns the cached texture for the curve, if one has been baked.
func (c *CurveTextureCache) Get(curve *CurveTexture) (*ebiten.Image, bool) {
	img, ok := c.textures[curve.CacheKey()]
	return img, ok
}

// Len returns the number of baked curve textures.
func (c *CurveTextureCache) Len() int {
	return len(c.textures)
}

// GradientTextureCache deduplicates baked gradient textures by content
// hash, with the same at-most-one-bake-per-key and no-eviction contract as
// CurveTextureCache.
type GradientTextureCache struct {
	textures map[uint64]*ebiten.Image
}

// NewGradientTextureCache returns an empty gradient texture cache.
func NewGradientTextureCache() *GradientTextureCache {
	return &GradientTextureCache{textures: make(map[uint64]*ebiten.Image)}
}

// GetOrCreate returns the baked texture for the gradient, baking it on
// first use. Structurally equal gradients share one texture.
func (c *GradientTextureCache) GetOrCreate(gradient *Gradient) *ebiten.Image {
	key := gradient.CacheKey()
	if img, ok := c.textures[key]; ok {
		return img
	}
	img := ebiten.NewImage(BakedTextureWidth, 1)
	img.WritePixels(BakeGradientPixels(gradient))
	c.textures[key] = img
	return img
}

// Get returns the cached texture for the gradient, if one has been baked.
func (c *GradientTextureCache) Get(gradient *Gradient) (*ebiten.Image, bool) {
	img, ok := c.textures[gradient.CacheKey()]
	return img, ok
}

// Len returns the number of baked gradient textures.
func (c *GradientTextureCache) Len() int {
	return len(c.textures)
}

// BakeCurvePixels samples the curve across [0, 1] into a 256x1 grayscale
// RGBA strip (same byte in R, G, B; opaque alpha). Samples are clamped to
// [0, 1] before quantization; the curve's output Range is the consumer's
// concern, not the bake's.
func BakeCurvePixels(curve *CurveTexture) []byte {
	pixels := make([]byte, BakedTextureWidth*4)
	for x := 0; x < BakedTextureWidth; x++ {
		t := float32(x) / float32(BakedTextureWidth-1)
		v := quantize(curve.Sample(t))
		pixels[x*4+0] = v
		pixels[x*4+1] = v
		pixels[x*4+2] = v
		pixels[x*4+3] = 0xFF
	}
	return pixels
}

// BakeGradientPixels samples the gradient across [0, 1] into a 256x1 RGBA
// strip.
func BakeGradientPixels(gradient *Gradient) []byte {
	pixels := make([]byte, BakedTextureWidth*4)
	for x := 0; x < BakedTextureWidth; x++ {
		t := float32(x) / float32(BakedTextureWidth-1)
		c := gradient.Sample(t)
		pixels[x*4+0] = quantize(c.R)
		pixels[x*4+1] = quantize(c.G)
		pixels[x*4+2] = quantize(c.B)
		pixels[x*4+3] = quantize(c.A)
	}
	return pixels
}

// quantize maps a [0, 1] sample to a byte, clamping out-of-range values.
func quantize(v float32) byte {
	return byte(clamp01(v)*255 + 0.5)
}

// fallback 1x1 white singleton (no sync.Once; the core is single-threaded)
var fallbackTexture *ebiten.Image

// FallbackTexture returns the shared 1x1 opaque-white texture used when no
// curve or gradient is configured, or when a curve is constant. It is
// created lazily and never evicted.
func FallbackTexture() *ebiten.Image {
	if fallbackTexture == nil {
		fallbackTexture = ebiten.NewImage(1, 1)
		fallbackTexture.Fill(color.White)
	}
	return fallbackTexture
}
