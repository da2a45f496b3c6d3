package domain

// CatalogExercise is one entry of the external exercise catalog. The
// catalog is read-only to this system: entries are fetched from the
// collaborator API and never written back.
type CatalogExercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	GifURL           string   `json:"gifUrl,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	Target           string   `json:"target,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
}
