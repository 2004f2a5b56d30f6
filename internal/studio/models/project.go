package models

import (
	"encoding/base64"
	"time"
)

// Payload holds binary image content plus its MIME type. The authoritative
// copy of Data lives in the blob repository; the metadata document always
// stores it stripped. In memory, Data is either the hydrated bytes or empty.
type Payload struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data,omitempty"`
}

// Empty reports whether the payload carries no bytes.
func (p Payload) Empty() bool {
	return len(p.Data) == 0
}

// Stripped returns a copy with the binary content removed and only the MIME
// type retained.
func (p Payload) Stripped() Payload {
	return Payload{MimeType: p.MimeType}
}

// DataURL renders the payload as a data: URL for display layers.
func (p Payload) DataURL() string {
	if p.Empty() {
		return ""
	}
	return "data:" + p.MimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// ReferenceImage is an image the user attached to a project as visual
// context for generation. Its ID doubles as the blob repository key.
type ReferenceImage struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Payload Payload `json:"payload"`
}

// Character is a reference image with a user-editable label, distinct from
// the original filename, that is woven into the prompt text.
type Character struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Payload Payload `json:"payload"`
}

// Project owns its reference images and characters; deleting the project
// cascades to both and to every generated image that points back at it.
type Project struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	StyleDirective  string           `json:"style_directive"`
	ReferenceImages []ReferenceImage `json:"reference_images"`
	Characters      []Character      `json:"characters"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Clone returns a deep copy so reducer output never aliases reducer input.
func (p Project) Clone() Project {
	out := p
	out.ReferenceImages = append([]ReferenceImage(nil), p.ReferenceImages...)
	out.Characters = append([]Character(nil), p.Characters...)
	return out
}
