package pipeline

import "regexp"

// Fixed URL/domain patterns for the anti-link stage.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://\S+`),
	regexp.MustCompile(`(?i)www\.\S+`),
	regexp.MustCompile(`(?i)\S+\.(com|org|net|edu|gov|mil|int|co|io|me|tv|app|tk|ml|ga|cf|ly)\b`),
}

// DetectLink returns the first link-looking substring of text, or false.
func DetectLink(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, p := range linkPatterns {
		if m := p.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
