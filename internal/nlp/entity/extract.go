// Package entity recognizes movie-domain entities in free-text queries
// and derives structured search parameters from them. All dictionaries
// are fixed at compile time; matching is deterministic.
package entity

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/querylens/internal/domain"
	"github.com/kailas-cloud/querylens/internal/nlp/normalize"
	"github.com/kailas-cloud/querylens/internal/nlp/tokenize"
)

// genreAliases maps every recognized genre phrase, English and folded
// Vietnamese alike, to its canonical English genre. Keys hold tokenized
// form: lowercase, diacritics folded, punctuation collapsed to spaces.
var genreAliases = map[string]string{
	"action": "action", "adventure": "adventure", "animation": "animation",
	"comedy": "comedy", "crime": "crime", "documentary": "documentary",
	"drama": "drama", "family": "family", "fantasy": "fantasy",
	"history": "history", "horror": "horror", "music": "music",
	"mystery": "mystery", "romance": "romance", "sport": "sport",
	"thriller": "thriller", "war": "war", "western": "western",
	"scifi": "scifi", "sci fi": "scifi", "science fiction": "scifi",

	"hanh dong": "action", "phieu luu": "adventure", "hoat hinh": "animation",
	"hai": "comedy", "hai kich": "comedy", "toi pham": "crime",
	"tai lieu": "documentary", "chinh kich": "drama", "gia dinh": "family",
	"vien tuong": "fantasy", "lich su": "history", "kinh di": "horror",
	"ma": "horror", "am nhac": "music", "bi an": "mystery",
	"lang man": "romance", "tinh cam": "romance", "khoa hoc vien tuong": "scifi",
	"the thao": "sport", "gay can": "thriller", "chien tranh": "war",
	"cao boi": "western",
}

var (
	timeKeywords = []string{
		"classic", "cu", "kinh dien", "latest", "moi", "moi nhat",
		"new", "old", "recent", "vintage",
	}
	ratingKeywords = []string{
		"bad", "best", "excellent", "good", "hay", "hay nhat", "poor",
		"te", "te nhat", "top", "tot", "worst", "xau",
	}
	popularityKeywords = []string{
		"famous", "hot", "noi tieng", "pho bien", "popular", "trending",
		"viral",
	}
)

// famousPeople is the folded whitelist of actors and directors. Kept
// sorted so match output order is stable.
var famousPeople = []string{
	"angelina jolie", "anne hathaway", "ben affleck",
	"benedict cumberbatch", "brad pitt", "brie larson",
	"chadwick boseman", "chris evans", "chris hemsworth", "chris pratt",
	"christopher nolan", "denis villeneuve", "dwayne johnson",
	"emma stone", "gal gadot", "guillermo del toro", "henry cavill",
	"james cameron", "jason momoa", "jason statham", "jennifer lawrence",
	"jeremy renner", "jj abrams", "johnny depp", "jon favreau",
	"keanu reeves", "leonardo dicaprio", "ly hai", "margot robbie",
	"mark ruffalo", "mark wahlberg", "martin scorsese", "matt damon",
	"natalie portman", "ngo thanh van", "paul rudd", "peter jackson",
	"quentin tarantino", "ridley scott", "robert downey jr",
	"russo brothers", "ryan gosling", "scarlett johansson",
	"steven spielberg", "tom cruise", "tom hiddleston", "tom holland",
	"tran thanh", "truong giang", "vin diesel", "wes anderson",
	"will smith", "zendaya",
}

// nameCorrections repairs frequent speech-to-text garblings of person
// names before dictionary matching.
var nameCorrections = map[string]string{
	"chrystal non":  "christopher nolan",
	"crystal non":   "christopher nolan",
	"leo di caprio": "leonardo dicaprio",
	"leo dicaprio":  "leonardo dicaprio",
	"no lan":        "nolan",
	"non":           "nolan",
	"chris evan":    "chris evans",
	"robert downey": "robert downey jr",
	"tom crew":      "tom cruise",
	"tom cruz":      "tom cruise",
}

var nameCorrectionKeys = sortedKeys(nameCorrections)

var (
	yearPattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	titlePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

// Extract recognizes every entity class in the raw query text. Output
// slices are deduplicated and ordered deterministically.
func Extract(text string) domain.EntityBag {
	folded := foldedPhrase(text)
	folded = applyNameCorrections(folded)
	haystack := " " + folded + " "

	bag := domain.EntityBag{
		Genres:      matchGenres(haystack),
		Years:       matchYears(text),
		Titles:      matchTitles(text),
		People:      matchPeople(haystack),
		TimeExprs:   matchKeywords(haystack, timeKeywords),
		RatingExprs: matchKeywords(haystack, ratingKeywords),
		PopExprs:    matchKeywords(haystack, popularityKeywords),
	}
	return bag
}

// ExtractYearRange returns the min and max four-digit year mentioned in
// the text, or the zero range when none appear.
func ExtractYearRange(text string) domain.YearRange {
	matches := yearPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return domain.YearRange{}
	}
	yr := domain.YearRange{}
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if yr.Min == 0 || y < yr.Min {
			yr.Min = y
		}
		if y > yr.Max {
			yr.Max = y
		}
	}
	return yr
}

// foldedPhrase lowercases, strips diacritics, and collapses punctuation
// so multi-word dictionary keys match as whole-word phrases.
func foldedPhrase(text string) string {
	return strings.Join(tokenize.Split(normalize.Fold(text)), " ")
}

func applyNameCorrections(folded string) string {
	for _, wrong := range nameCorrectionKeys {
		correct := nameCorrections[wrong]
		if strings.Contains(folded, correct) {
			continue
		}
		folded = strings.ReplaceAll(
			" "+folded+" ",
			" "+wrong+" ",
			" "+correct+" ",
		)
		folded = strings.TrimSpace(folded)
	}
	return folded
}

func matchGenres(haystack string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, alias := range sortedKeys(genreAliases) {
		if !hasPhrase(haystack, alias) {
			continue
		}
		canonical := genreAliases[alias]
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

func matchYears(text string) []string {
	matches := yearPattern.FindAllString(text, -1)
	seen := make(map[string]struct{})
	var out []string
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func matchTitles(text string) []string {
	matches := titlePattern.FindAllString(text, -1)
	seen := make(map[string]struct{})
	var out []string
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func matchPeople(haystack string) []string {
	var out []string
	for _, person := range famousPeople {
		if hasPhrase(haystack, person) {
			out = append(out, person)
		}
	}
	if directed := directorHeuristic(haystack); directed != "" && !contains(out, directed) {
		out = append(out, directed)
		sort.Strings(out)
	}
	return out
}

// directorHeuristic recovers a famous director name mentioned after a
// "director" cue word, tolerating the usual speech recognition damage
// to "nolan".
func directorHeuristic(haystack string) string {
	fields := strings.Fields(haystack)
	for i, word := range fields {
		if word != "dao" && word != "director" {
			continue
		}
		end := i + 4
		if end > len(fields) {
			end = len(fields)
		}
		window := strings.Join(fields[i+1:end], " ")
		switch {
		case strings.Contains(window, "nolan") || strings.Contains(window, "non"):
			return "christopher nolan"
		case strings.Contains(window, "spielberg"):
			return "steven spielberg"
		case strings.Contains(window, "tarantino"):
			return "quentin tarantino"
		}
	}
	return ""
}

func matchKeywords(haystack string, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if hasPhrase(haystack, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// hasPhrase reports whether the space-padded haystack contains the
// phrase on whole-word boundaries.
func hasPhrase(haystack, phrase string) bool {
	return strings.Contains(haystack, " "+phrase+" ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
