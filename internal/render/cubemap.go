package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mirror-scene/internal/cubegl"
	"mirror-scene/internal/envmap"
)

// LoadCubemap builds a cube texture from six square images of equal size in
// +X, -X, +Y, -Y, +Z, -Z order and gives it a full mip chain. It returns the
// texture and its mip level count.
func LoadCubemap(paths [envmap.FaceCount]string) (rl.Texture2D, int32, error) {
	var images [envmap.FaceCount]*rl.Image
	defer func() {
		for _, img := range images {
			if img != nil {
				rl.UnloadImage(img)
			}
		}
	}()

	var size int32
	for i, path := range paths {
		img := rl.LoadImage(path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return rl.Texture2D{}, 0, fmt.Errorf("render: cubemap face %s: could not load %s", envmap.Face(i), path)
		}
		images[i] = img
		if img.Width != img.Height {
			return rl.Texture2D{}, 0, fmt.Errorf("render: cubemap face %s: %dx%d is not square", envmap.Face(i), img.Width, img.Height)
		}
		if i == 0 {
			size = img.Width
		} else if img.Width != size {
			return rl.Texture2D{}, 0, fmt.Errorf("render: cubemap face %s: size %d, want %d", envmap.Face(i), img.Width, size)
		}
		rl.ImageFormat(img, rl.UncompressedR8g8b8a8)
	}

	// raylib reads a horizontal strip in the same face order.
	strip := rl.GenImageColor(int(size)*envmap.FaceCount, int(size), rl.Black)
	defer rl.UnloadImage(strip)
	for i, img := range images {
		src := rl.NewRectangle(0, 0, float32(size), float32(size))
		dst := rl.NewRectangle(float32(int32(i)*size), 0, float32(size), float32(size))
		rl.ImageDraw(strip, img, src, dst, rl.White)
	}

	tex := rl.LoadTextureCubemap(strip, rl.CubemapLayoutLineHorizontal)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, 0, fmt.Errorf("render: cubemap upload failed")
	}
	if err := cubegl.BuildMipChain(tex.ID); err != nil {
		rl.UnloadTexture(tex)
		return rl.Texture2D{}, 0, err
	}
	levels := envmap.MipLevels(size)
	tex.Mipmaps = levels
	return tex, levels, nil
}

// CubeTexture wraps a raw GL cube texture so raylib materials can bind it.
func CubeTexture(id uint32, size, levels int32) rl.Texture2D {
	return rl.Texture2D{
		ID:      id,
		Width:   size,
		Height:  size,
		Mipmaps: levels,
		Format:  rl.UncompressedR8g8b8a8,
	}
}
