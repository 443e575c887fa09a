package gemini

// Request is the generateContent request body.
type Request struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// Response is the subset of the generateContent response that is read.
type Response struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewRequest wraps a single prompt.
func NewRequest(prompt string) Request {
	return Request{Contents: []Content{{Parts: []Part{{Text: prompt}}}}}
}

// Prompt returns the text of the first part of the first content.
func (r Request) Prompt() (string, bool) {
	if len(r.Contents) == 0 || len(r.Contents[0].Parts) == 0 {
		return "", false
	}
	return r.Contents[0].Parts[0].Text, true
}

// NewResponse wraps text as a single-candidate response.
func NewResponse(text string) Response {
	return Response{Candidates: []Candidate{{
		Content:      &Content{Role: "model", Parts: []Part{{Text: text}}},
		FinishReason: "STOP",
	}}}
}

// Text returns candidates[0].content.parts[0].text.
func (r Response) Text() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 {
		return "", false
	}
	return c.Parts[0].Text, true
}
