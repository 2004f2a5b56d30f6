package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerationSettings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(s *GenerationSettings) {}},
		{name: "every aspect ratio accepted", mutate: func(s *GenerationSettings) { s.AspectRatio = AspectCinematic }},
		{name: "unknown aspect ratio", mutate: func(s *GenerationSettings) { s.AspectRatio = "7:5" }, wantErr: true},
		{name: "unknown size", mutate: func(s *GenerationSettings) { s.ImageSize = "8K" }, wantErr: true},
		{name: "temperature below range", mutate: func(s *GenerationSettings) { s.Temperature = -0.1 }, wantErr: true},
		{name: "temperature above range", mutate: func(s *GenerationSettings) { s.Temperature = 2.1 }, wantErr: true},
		{name: "temperature at bounds", mutate: func(s *GenerationSettings) { s.Temperature = 2 }},
		{name: "zero variations", mutate: func(s *GenerationSettings) { s.NumberOfVariations = 0 }, wantErr: true},
		{name: "unknown preset", mutate: func(s *GenerationSettings) { s.StylePreset = "vaporwave" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStylePreset_PromptText(t *testing.T) {
	assert.Equal(t, "", StyleNone.PromptText())
	assert.NotEmpty(t, StyleAnime.PromptText())
	assert.Equal(t, "", StylePreset("missing").PromptText())
}
