package orchestration

import (
	"strings"
	"time"
)

// FormattedResponse is the envelope returned to the endpoint: the raw
// result text, an HTML rendering, and metadata inferred from the text.
type FormattedResponse struct {
	Success       bool      `json:"success"`
	Failure       bool      `json:"failure"`
	OperationType string    `json:"operation_type"`
	Response      string    `json:"response"`
	ResponseHTML  string    `json:"response_html"`
	Timestamp     time.Time `json:"timestamp"`
}

var successMarkers = []string{"✅", "📋", "📅", "🏷️", "⚙️", "Successfully"}

// FormatResponse wraps an executor result string with inferred
// metadata. Success and failure are read off the result markers; a
// warning-marked result (e.g. "already assigned") is neither.
func FormatResponse(text string) FormattedResponse {
	failure := strings.Contains(text, "❌") ||
		strings.Contains(text, "Failed") ||
		strings.Contains(text, "Error")
	success := !failure && containsAny(text, successMarkers...)

	return FormattedResponse{
		Success:       success,
		Failure:       failure,
		OperationType: inferOperationType(text),
		Response:      text,
		ResponseHTML:  strings.ReplaceAll(text, "\n", "<br/>"),
		Timestamp:     time.Now(),
	}
}

func inferOperationType(text string) string {
	if strings.HasPrefix(text, "Multi-step operation results:") {
		return "multi_step"
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "created"):
		return "create"
	case strings.Contains(lower, "updated"), strings.Contains(lower, "modified"):
		return "update"
	case strings.Contains(lower, "deleted"), strings.Contains(lower, "removed"):
		return "delete"
	case strings.Contains(lower, "list"), strings.Contains(lower, "show"):
		return "list"
	}
	return "general"
}
