package generation

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/artkeeper/internal/studio/genai"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// BuildParts assembles the ordered request for one generation attempt.
// The text part comes first: style preset directive, project style,
// project description, character labels, then the user prompt. Inline
// images follow: project references, character images, an optional
// source image for edits, and an optional mask.
func BuildParts(project *models.Project, prompt string, settings models.GenerationSettings, source *models.Payload, mask *models.Payload) []genai.Part {
	var text strings.Builder

	if preset := settings.StylePreset.PromptText(); preset != "" {
		text.WriteString(preset)
		text.WriteString("\n")
	}
	if project != nil {
		if project.StyleDirective != "" {
			text.WriteString(project.StyleDirective)
			text.WriteString("\n")
		}
		if project.Description != "" {
			text.WriteString(project.Description)
			text.WriteString("\n")
		}
		for _, ch := range project.Characters {
			if ch.Label != "" {
				fmt.Fprintf(&text, "Character %q is shown in one of the attached images.\n", ch.Label)
			}
		}
	}
	text.WriteString(prompt)

	parts := []genai.Part{genai.TextPart(text.String())}

	if project != nil {
		for _, ri := range project.ReferenceImages {
			if !ri.Payload.Empty() {
				parts = append(parts, genai.ImagePart(ri.Payload))
			}
		}
		for _, ch := range project.Characters {
			if !ch.Payload.Empty() {
				parts = append(parts, genai.ImagePart(ch.Payload))
			}
		}
	}
	if source != nil && !source.Empty() {
		parts = append(parts, genai.ImagePart(*source))
	}
	if mask != nil && !mask.Empty() {
		parts = append(parts, genai.ImagePart(*mask))
	}
	return parts
}
