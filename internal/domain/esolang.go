package domain

// Language is the full record of one esoteric language as served by
// GET /api/esolangs/<name>. Multi-valued properties hold resource
// references, usually percent-encoded URIs whose last segment is the label.
type Language struct {
	// Name is the language identifier, as used in listing and search results.
	Name string `json:"name"`

	// URL is the page the data was collected from.
	URL string `json:"url"`

	YearCreated      string `json:"yearCreated"`
	ShortDescription string `json:"shortDescription"`
	Alias            string `json:"alias"`
	DesignedBy       string `json:"designedBy"`

	Dimensions           []string `json:"dimensions"`
	MemorySystem         []string `json:"memorySystem"`
	Paradigms            []string `json:"paradigms"`
	Categories           []string `json:"categories"`
	InfluencedBy         []string `json:"influencedBy"`
	Influenced           []string `json:"influenced"`
	FileExtensions       []string `json:"fileExtensions"`
	ComputationalClasses []string `json:"computationalClasses"`
	TypeSystems          []string `json:"typeSystems"`
	Dialects             []string `json:"dialects"`
}

// OptionDocument is one facet option as stored in the in-memory option index.
type OptionDocument struct {
	// Facet is the facet's endpoint segment, e.g. "computational-class".
	Facet string `json:"facet"`

	// Value is the raw option value as returned by the backend.
	Value string `json:"value"`

	// Label is the decoded, human readable last path segment of Value.
	Label string `json:"label"`
}

// Bleve field name constants for the option index mapping and queries.
const (
	OptionFieldFacet = "facet"
	OptionFieldValue = "value"
	OptionFieldLabel = "label"
)
