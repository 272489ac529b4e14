package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageToPage_SizedToImageProportions(t *testing.T) {
	engine := newTestEngine(t)

	data, err := engine.ImageToPage(opaquePNG(t, 100, 50))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	// One pixel per point, landscape image stays landscape
	assert.True(t, bytes.Contains(data, []byte("/MediaBox [0 0 100.00 50.00]")))
}

func TestImageToPage_PortraitImage(t *testing.T) {
	engine := newTestEngine(t)

	data, err := engine.ImageToPage(opaquePNG(t, 60, 200))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("/MediaBox [0 0 60.00 200.00]")))
}

func TestImageToPage_TransparentImage(t *testing.T) {
	engine := newTestEngine(t)

	data, err := engine.ImageToPage(transparentPNG(t, 40, 40))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestImageToPage_InvalidImage(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ImageToPage([]byte("definitely not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode page image")
}
