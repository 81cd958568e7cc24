package webextract

// Response is the uniform envelope returned by every extraction operation.
// Exactly one of Data and Error is set, matching OK.
type Response struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
	Meta  Meta       `json:"meta"`
}

// ErrorBody is the wire form of a failed operation.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Meta accompanies every response. Warnings are advisory and only ever
// appear on successful responses.
type Meta struct {
	Source      string      `json:"source,omitempty"`
	RetrievedAt string      `json:"retrieved_at"`
	Pagination  *Pagination `json:"pagination,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// Pagination is carried for shape compatibility; extraction operations are
// single-document, so NextCursor is always null.
type Pagination struct {
	NextCursor *string `json:"next_cursor"`
}
