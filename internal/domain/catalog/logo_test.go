package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogoPair_Validate(t *testing.T) {
	assert.NoError(t, LogoPair{Dark: []byte{1}, Light: []byte{2}}.Validate())
	assert.Error(t, LogoPair{Light: []byte{2}}.Validate())
	assert.Error(t, LogoPair{Dark: []byte{1}}.Validate())
}

func TestProcessedLogos_VariantFor(t *testing.T) {
	logos := ProcessedLogos{
		DarkLargeURL:  "https://cdn.example.com/dark_large.png",
		DarkSmallURL:  "https://cdn.example.com/dark_small.png",
		LightLargeURL: "https://cdn.example.com/light_large.png",
		LightSmallURL: "https://cdn.example.com/light_small.png",
	}

	// Dark background pages get the light-tagged logo to keep contrast
	v := logos.VariantFor(BackgroundToneDark)
	assert.Equal(t, "https://cdn.example.com/light_large.png", v.LargeURL)
	assert.Equal(t, "https://cdn.example.com/light_small.png", v.SmallURL)

	// Light background pages get the dark-tagged logo
	v = logos.VariantFor(BackgroundToneLight)
	assert.Equal(t, "https://cdn.example.com/dark_large.png", v.LargeURL)
	assert.Equal(t, "https://cdn.example.com/dark_small.png", v.SmallURL)
}

func TestBackgroundTone_Opposite(t *testing.T) {
	assert.Equal(t, BackgroundToneDark, BackgroundToneLight.Opposite())
	assert.Equal(t, BackgroundToneLight, BackgroundToneDark.Opposite())
}
