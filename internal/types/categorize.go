package types

// Categorization statuses.
const (
	CategorizationMatched  = "matched"
	CategorizationNewTag   = "new_tag"
	CategorizationRejected = "rejected"
)

// CategorizationResult is the sanitized outcome of mapping a free-text
// visitor intent to an audience tag. Invariants enforced by the intent
// service: rejected always carries tagName "friend" with canonical friend
// guidelines; matched against a known tag always carries that tag's
// canonical guidelines; confidence is clamped to [0,1].
type CategorizationResult struct {
	Status      string  `json:"status"`
	TagName     string  `json:"tagName"`
	DisplayName string  `json:"displayName"`
	Guidelines  string  `json:"guidelines"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason,omitempty"`
}

// CustomTag is persisted once per tag name when categorization mints a new
// audience tag. First write wins; existing records are never overwritten.
type CustomTag struct {
	TagName     string `json:"tagName"`
	DisplayName string `json:"displayName"`
	Guidelines  string `json:"guidelines"`
	IsCustom    bool   `json:"isCustom"`
	MappedFrom  string `json:"mappedFrom"`
	CreatedAt   string `json:"createdAt"`
}
