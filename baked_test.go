package sprinkles

import "testing"

func TestBakeCurvePixelsEndpoints(t *testing.T) {
	curve := linearCurve(1, 0)
	pixels := BakeCurvePixels(&curve)
	if len(pixels) != BakedTextureWidth*4 {
		t.Fatalf("pixel strip length = %d, want %d", len(pixels), BakedTextureWidth*4)
	}
	if pixels[0] != 255 {
		t.Errorf("first texel = %d, want 255", pixels[0])
	}
	last := (BakedTextureWidth - 1) * 4
	if pixels[last] != 0 {
		t.Errorf("last texel = %d, want 0", pixels[last])
	}
	// Grayscale: R, G, B agree; alpha opaque.
	mid := (BakedTextureWidth / 2) * 4
	if pixels[mid] != pixels[mid+1] || pixels[mid] != pixels[mid+2] {
		t.Error("curve bake should be grayscale")
	}
	if pixels[mid+3] != 255 {
		t.Errorf("curve bake alpha = %d, want 255", pixels[mid+3])
	}
}

func TestBakeCurvePixelsClampsOutOfRange(t *testing.T) {
	// Values outside [0, 1] clamp at quantization rather than wrapping.
	curve := linearCurve(-1, 2)
	pixels := BakeCurvePixels(&curve)
	if pixels[0] != 0 {
		t.Errorf("below-range texel = %d, want 0", pixels[0])
	}
	last := (BakedTextureWidth - 1) * 4
	if pixels[last] != 255 {
		t.Errorf("above-range texel = %d, want 255", pixels[last])
	}
}

func TestBakeGradientPixelsEndpoints(t *testing.T) {
	g := redToBlue()
	pixels := BakeGradientPixels(&g)
	if pixels[0] != 255 || pixels[2] != 0 {
		t.Errorf("first texel RGBA = %v, want red", pixels[0:4])
	}
	last := (BakedTextureWidth - 1) * 4
	if pixels[last] != 0 || pixels[last+2] != 255 {
		t.Errorf("last texel RGBA = %v, want blue", pixels[last:last+4])
	}
	if pixels[3] != 255 {
		t.Errorf("alpha = %d, want 255", pixels[3])
	}
}

func TestCurveCacheDeduplicates(t *testing.T) {
	cache := NewCurveTextureCache()
	a := linearCurve(1, 0)
	b := linearCurve(1, 0) // structurally identical, separate value

	first := cache.GetOrCreate(&a)
	second := cache.GetOrCreate(&b)
	if first != second {
		t.Error("structurally equal curves should share one baked texture")
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Len())
	}
}

func TestCurveCacheDifferentCurvesGetDifferentTextures(t *testing.T) {
	cache := NewCurveTextureCache()
	a := linearCurve(1, 0)
	b := linearCurve(0, 1)

	if cache.GetOrCreate(&a) == cache.GetOrCreate(&b) {
		t.Error("different curves should not share a texture")
	}
	if cache.Len() != 2 {
		t.Errorf("cache size = %d, want 2", cache.Len())
	}
}

func TestCurveCacheGet(t *testing.T) {
	cache := NewCurveTextureCache()
	curve := linearCurve(1, 0)

	if _, ok := cache.Get(&curve); ok {
		t.Error("Get before bake should miss")
	}
	created := cache.GetOrCreate(&curve)
	got, ok := cache.Get(&curve)
	if !ok || got != created {
		t.Error("Get after bake should return the same handle")
	}
}

func TestGradientCacheDeduplicates(t *testing.T) {
	cache := NewGradientTextureCache()
	a := redToBlue()
	b := redToBlue()

	if cache.GetOrCreate(&a) != cache.GetOrCreate(&b) {
		t.Error("structurally equal gradients should share one baked texture")
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Len())
	}
}

func TestGradientCacheDifferentGradientsGetDifferentTextures(t *testing.T) {
	cache := NewGradientTextureCache()
	a := redToBlue()
	b := WhiteGradient()

	if cache.GetOrCreate(&a) == cache.GetOrCreate(&b) {
		t.Error("different gradients should not share a texture")
	}
}

func TestFallbackTextureIsShared(t *testing.T) {
	if FallbackTexture() != FallbackTexture() {
		t.Error("fallback texture should be a shared singleton")
	}
}

func TestBakedTextureSize(t *testing.T) {
	cache := NewCurveTextureCache()
	curve := linearCurve(1, 0)
	img := cache.GetOrCreate(&curve)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != BakedTextureWidth || h != 1 {
		t.Errorf("baked texture is %dx%d, want %dx1", w, h, BakedTextureWidth)
	}
}
