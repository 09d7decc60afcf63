package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	format, err := DecodeImage(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = DecodeImage([]byte("notanimage"))
	assert.Error(t, err)

	_, err = DecodeImage(nil)
	assert.Error(t, err)

	// 文件头正确但内容被截断
	data := pngBytes(t)
	_, err = DecodeImage(data[:len(data)/2])
	assert.Error(t, err)
}

func TestGenerateImagePath(t *testing.T) {
	p := GenerateImagePath("Photo.JPG", "jpeg")
	assert.True(t, strings.HasPrefix(p, RecipeImageDir+"/"))
	assert.True(t, strings.HasSuffix(p, ".jpg"))

	p = GenerateImagePath("noext", "png")
	assert.True(t, strings.HasSuffix(p, ".png"))

	assert.NotEqual(t, GenerateImagePath("a.png", "png"), GenerateImagePath("a.png", "png"))
}
