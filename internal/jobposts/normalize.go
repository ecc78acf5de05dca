package jobposts

import (
	"regexp"
	"strings"

	"jobpost-backend/internal/llm"
)

// FallbackContent is returned whenever the provider response has no usable text.
const FallbackContent = "Failed to generate content. Please try again."

var (
	openingFence = regexp.MustCompile("(?i)^```(?:markdown|md)?[ \\t]*\\r?\\n")
	closingFence = regexp.MustCompile("\\r?\\n?```[ \\t]*$")
)

// Normalize extracts the first candidate's text and cleans it.
func Normalize(resp *llm.Response) string {
	text, ok := resp.FirstText()
	if !ok {
		return FallbackContent
	}
	cleaned := CleanMarkdown(text)
	if cleaned == "" {
		return FallbackContent
	}
	return cleaned
}

// CleanMarkdown strips a Markdown code-fence wrapper and trims whitespace.
// Content is only unwrapped when it opens with a bare, markdown or md fence;
// other fences and internal Markdown are left alone. Applying it twice gives
// the same result as applying it once.
func CleanMarkdown(text string) string {
	out := strings.TrimSpace(text)
	for {
		loc := openingFence.FindStringIndex(out)
		if loc == nil {
			return out
		}
		body := out[loc[1]:]
		body = closingFence.ReplaceAllString(body, "")
		out = strings.TrimSpace(body)
	}
}

// IsFallback reports whether content is the fixed fallback string.
func IsFallback(content string) bool {
	return content == FallbackContent
}
