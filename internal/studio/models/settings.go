// Package models defines the data types of the studio core: projects with
// their reference images and characters, generated images, the generation
// queue, and the single persisted metadata document.
package models

import "fmt"

// AspectRatio is one of the fixed ratios the generator accepts.
type AspectRatio string

const (
	AspectSquare         AspectRatio = "1:1"
	AspectPortrait       AspectRatio = "2:3"
	AspectLandscape      AspectRatio = "3:2"
	AspectClassicPhoto   AspectRatio = "3:4"
	AspectClassicWide    AspectRatio = "4:3"
	AspectSocialPortrait AspectRatio = "4:5"
	AspectSocialWide     AspectRatio = "5:4"
	AspectStory          AspectRatio = "9:16"
	AspectWidescreen     AspectRatio = "16:9"
	AspectCinematic      AspectRatio = "21:9"
)

var aspectRatios = map[AspectRatio]struct{}{
	AspectSquare: {}, AspectPortrait: {}, AspectLandscape: {},
	AspectClassicPhoto: {}, AspectClassicWide: {}, AspectSocialPortrait: {},
	AspectSocialWide: {}, AspectStory: {}, AspectWidescreen: {}, AspectCinematic: {},
}

// ImageSize is the requested output resolution class.
type ImageSize string

const (
	Size1K ImageSize = "1K"
	Size2K ImageSize = "2K"
	Size4K ImageSize = "4K"
)

// StylePreset selects a canned style directive prepended to every prompt.
type StylePreset string

const (
	StyleNone           StylePreset = "none"
	StylePhotorealistic StylePreset = "photorealistic"
	StyleAnime          StylePreset = "anime"
	StyleWatercolor     StylePreset = "watercolor"
	StyleOilPainting    StylePreset = "oil_painting"
	StylePixelArt       StylePreset = "pixel_art"
	StyleLineArt        StylePreset = "line_art"
	StyleRender3D       StylePreset = "3d_render"
)

var stylePresetText = map[StylePreset]string{
	StyleNone:           "",
	StylePhotorealistic: "Photorealistic, high detail, natural lighting.",
	StyleAnime:          "Anime style, clean line work, cel shading.",
	StyleWatercolor:     "Watercolor painting, soft washes, visible paper texture.",
	StyleOilPainting:    "Oil painting, thick brush strokes, rich color.",
	StylePixelArt:       "Pixel art, limited palette, crisp pixels.",
	StyleLineArt:        "Black and white line art, no shading.",
	StyleRender3D:       "3D render, physically based materials, studio lighting.",
}

// PromptText returns the style directive for the preset, empty for StyleNone
// or unknown presets.
func (p StylePreset) PromptText() string {
	return stylePresetText[p]
}

// GenerationSettings is a value type copied into every request and image.
type GenerationSettings struct {
	AspectRatio        AspectRatio `json:"aspect_ratio"`
	ImageSize          ImageSize   `json:"image_size"`
	Temperature        float64     `json:"temperature"`
	NumberOfVariations int         `json:"number_of_variations"`
	StylePreset        StylePreset `json:"style_preset"`
}

// DefaultSettings returns the settings applied to fresh documents and to
// documents written before the settings field existed.
func DefaultSettings() GenerationSettings {
	return GenerationSettings{
		AspectRatio:        AspectSquare,
		ImageSize:          Size1K,
		Temperature:        1,
		NumberOfVariations: 1,
		StylePreset:        StyleNone,
	}
}

func (s GenerationSettings) Validate() error {
	if _, ok := aspectRatios[s.AspectRatio]; !ok {
		return fmt.Errorf("unknown aspect ratio %q", s.AspectRatio)
	}
	switch s.ImageSize {
	case Size1K, Size2K, Size4K:
	default:
		return fmt.Errorf("unknown image size %q", s.ImageSize)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", s.Temperature)
	}
	if s.NumberOfVariations < 1 {
		return fmt.Errorf("number of variations must be positive, got %d", s.NumberOfVariations)
	}
	if _, ok := stylePresetText[s.StylePreset]; !ok {
		return fmt.Errorf("unknown style preset %q", s.StylePreset)
	}
	return nil
}

// IsZero reports whether the settings were never initialized, which happens
// when loading documents from schema versions that predate the field.
func (s GenerationSettings) IsZero() bool {
	return s == GenerationSettings{}
}
