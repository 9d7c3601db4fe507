package domain

// ProviderState is the resolved configuration state of a vision provider
type ProviderState string

const (
	ProviderActive       ProviderState = "active"
	ProviderDisabled     ProviderState = "disabled"
	ProviderUnconfigured ProviderState = "unconfigured"
)

// ProviderSlot is one entry in the ordered provider cascade.
// Recognizer is nil unless State is ProviderActive.
type ProviderSlot struct {
	Name       string
	State      ProviderState
	Recognizer FoodRecognizer
}

// Attempt records what happened to one provider during a cascade run
type Attempt struct {
	Provider string `json:"provider"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
}
