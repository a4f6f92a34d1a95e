package rewrite

import (
	"regexp"
	"strings"
)

// voiceErrors repairs speech-to-text damage around the word "phim"
// before any other processing. "film" is included because Vietnamese
// pronunciation of phim is routinely transcribed as the English word.
var voiceErrors = map[string]string{
	"fim":  "phim",
	"phin": "phim",
	"film": "phim",
}

var voiceErrorPattern = regexp.MustCompile(`(?i)\b(fim|phin|film)\b`)

// actionWords are leading imperative words stripped from voice queries.
// Accented and folded Vietnamese spellings both appear since input may
// arrive either way.
var actionWords = map[string]struct{}{
	"tìm": {}, "tim": {}, "xem": {}, "cho": {}, "tôi": {}, "toi": {},
	"muốn": {}, "muon": {}, "cần": {}, "can": {},
	"find": {}, "search": {}, "watch": {}, "want": {}, "need": {},
}

// actionPhrases are two-word leads stripped as a unit.
var actionPhrases = []string{
	"tìm kiếm", "tim kiem", "show me", "give me",
}

var (
	searchVerbs = map[string]struct{}{"tìm": {}, "tim": {}, "find": {}, "search": {}}
	mediumNouns = map[string]struct{}{"phim": {}, "movie": {}, "film": {}}
)

// NormalizeVoiceErrors rewrites known transcription mistakes on word
// boundaries, case-insensitively.
func NormalizeVoiceErrors(query string) string {
	return voiceErrorPattern.ReplaceAllStringFunc(query, func(m string) string {
		return voiceErrors[strings.ToLower(m)]
	})
}

// CleanActionWords strips imperative lead-ins ("tìm", "show me", "find
// movie") from the front of a voice query, leaving the descriptive
// part. A query made entirely of action words comes back unchanged.
func CleanActionWords(query string) string {
	lower := strings.ToLower(strings.TrimSpace(NormalizeVoiceErrors(query)))
	words := strings.Fields(lower)

	for len(words) > 0 {
		if len(words) >= 2 {
			lead := words[0] + " " + words[1]
			if phraseIn(lead, actionPhrases) {
				words = words[2:]
				continue
			}
		}
		if _, ok := actionWords[words[0]]; ok {
			words = words[1:]
			continue
		}
		break
	}

	// "tìm phim X" and "find movie X" drop the full two-word lead.
	if len(words) >= 2 {
		_, verb := searchVerbs[words[0]]
		_, noun := mediumNouns[words[1]]
		if verb && noun {
			words = words[2:]
		}
	}

	if len(words) == 0 {
		return query
	}
	return strings.Join(words, " ")
}

func phraseIn(s string, list []string) bool {
	for _, item := range list {
		if s == item {
			return true
		}
	}
	return false
}
