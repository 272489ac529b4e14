package catalog

import "github.com/catalog/backend/internal/domain/shared"

// LogoPair holds the two raw logo buffers supplied by the caller, one tagged
// for dark page backgrounds and one for light page backgrounds.
type LogoPair struct {
	Dark  []byte
	Light []byte
}

// Validate checks that both buffers are present
func (p LogoPair) Validate() error {
	if len(p.Dark) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Dark-background logo is required")
	}
	if len(p.Light) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Light-background logo is required")
	}
	return nil
}

// ProcessedLogos holds the four logo variants produced by the external logo
// workflow: the dark-tagged and light-tagged inputs each yield a large and a
// small variant.
type ProcessedLogos struct {
	DarkLargeURL  string
	DarkSmallURL  string
	LightLargeURL string
	LightSmallURL string
}

// LogoVariant is the (large, small) URL pair chosen for a single page
type LogoVariant struct {
	LargeURL string
	SmallURL string
}

// VariantFor selects the logo variant for a page by cross-mapping: a page
// with a dark background uses the light-tagged logo and vice versa, so the
// composited mark keeps contrast against the page.
func (p ProcessedLogos) VariantFor(background BackgroundTone) LogoVariant {
	if background == BackgroundToneDark {
		return LogoVariant{LargeURL: p.LightLargeURL, SmallURL: p.LightSmallURL}
	}
	return LogoVariant{LargeURL: p.DarkLargeURL, SmallURL: p.DarkSmallURL}
}
