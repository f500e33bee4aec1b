package models

// ClientProfile is the brief a caller supplies for one generation session.
type ClientProfile struct {
	ClientName string `json:"clientName"`
	Industry   string `json:"industry"`
	Audience   string `json:"audience"`
	Website    string `json:"website"`
	Strategy   string `json:"strategy"`
}

// Variation is one complete email draft built around a single hook.
type Variation struct {
	ID       int    `json:"id"`
	HookType string `json:"hookType"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	PS       string `json:"ps"`
}

type GenerateResponse struct {
	Variations []Variation `json:"variations"`
	// Requested is the count the caller asked for. It can exceed
	// len(Variations) when the hook catalog is smaller than the request.
	Requested int    `json:"requested"`
	Source    string `json:"source"`
}

const (
	SourceLLM      = "llm"
	SourceTemplate = "template"
)

// GenerateRequest is the body accepted by the HTTP and A2A surfaces.
// A nil Count means the server default.
type GenerateRequest struct {
	ClientProfile
	Count *int `json:"count,omitempty"`
}
