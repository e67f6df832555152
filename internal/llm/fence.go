package llm

import "strings"

// StripFences removes Markdown code-fence markers that models wrap around
// JSON despite being told not to, then trims surrounding whitespace. Every
// occurrence is removed, not only a leading/trailing pair.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
