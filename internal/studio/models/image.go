package models

import "time"

// GeneratedImage is an output committed by the generation orchestrator.
// ProjectID and ParentImageID are plain identifier values: the referenced
// records may no longer exist and lookups must tolerate that.
type GeneratedImage struct {
	ID            string             `json:"id"`
	ProjectID     string             `json:"project_id"`
	Prompt        string             `json:"prompt"`
	Payload       Payload            `json:"payload"`
	Settings      GenerationSettings `json:"settings"`
	CreatedAt     time.Time          `json:"created_at"`
	ParentImageID string             `json:"parent_image_id,omitempty"`

	// Mask restricts edits to a region of the parent image. It only exists
	// in memory for the duration of a generation and is never persisted.
	Mask *Payload `json:"-"`
}
