package models

// SchemaVersion is stamped into every document this build writes.
const SchemaVersion = 2

// Credential is the external API key sealed with AES-GCM under a key
// derived from the user's passphrase (see internal/cryptox).
type Credential struct {
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`
	Salt       []byte `json:"salt"`
}

// Document is the single JSON record the metadata store persists. Payload
// fields inside it must be stripped before serialization: the document lives
// in a store with a hard capacity ceiling and binary content belongs to the
// blob repository.
type Document struct {
	SchemaVersion   int                `json:"schema_version"`
	Projects        []Project          `json:"projects"`
	GeneratedImages []GeneratedImage   `json:"generated_images"`
	ActiveProjectID string             `json:"active_project_id"`
	DefaultSettings GenerationSettings `json:"default_settings"`
	Credential      *Credential        `json:"credential,omitempty"`
}

// EmptyDocument returns the document a fresh install starts from, and the
// fallback when a persisted document cannot be parsed.
func EmptyDocument() *Document {
	return &Document{
		SchemaVersion:   SchemaVersion,
		Projects:        []Project{},
		GeneratedImages: []GeneratedImage{},
		DefaultSettings: DefaultSettings(),
	}
}

// Backfill fills in fields that documents written by older schema versions
// lack, so consumers never see nil collections or zero-valued settings.
func (d *Document) Backfill() {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.GeneratedImages == nil {
		d.GeneratedImages = []GeneratedImage{}
	}
	for i := range d.Projects {
		if d.Projects[i].ReferenceImages == nil {
			d.Projects[i].ReferenceImages = []ReferenceImage{}
		}
		if d.Projects[i].Characters == nil {
			d.Projects[i].Characters = []Character{}
		}
	}
	if d.DefaultSettings.IsZero() {
		d.DefaultSettings = DefaultSettings()
	}
	if d.SchemaVersion < SchemaVersion {
		d.SchemaVersion = SchemaVersion
	}
}

// Stripped returns a deep copy with every payload emptied and transient
// masks dropped. This is the only form that may be serialized.
func (d *Document) Stripped() *Document {
	out := &Document{
		SchemaVersion:   d.SchemaVersion,
		Projects:        make([]Project, len(d.Projects)),
		GeneratedImages: make([]GeneratedImage, len(d.GeneratedImages)),
		ActiveProjectID: d.ActiveProjectID,
		DefaultSettings: d.DefaultSettings,
		Credential:      d.Credential,
	}

	for i, p := range d.Projects {
		cp := p.Clone()
		for j := range cp.ReferenceImages {
			cp.ReferenceImages[j].Payload = cp.ReferenceImages[j].Payload.Stripped()
		}
		for j := range cp.Characters {
			cp.Characters[j].Payload = cp.Characters[j].Payload.Stripped()
		}
		out.Projects[i] = cp
	}

	for i, img := range d.GeneratedImages {
		img.Payload = img.Payload.Stripped()
		img.Mask = nil
		out.GeneratedImages[i] = img
	}

	return out
}
