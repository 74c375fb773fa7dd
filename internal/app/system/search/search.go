// Package search ranks a business's hostels against a free-text query.
// Matching is accent and case insensitive and tolerates small typos.
package search

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Score weights.
const (
	nameExact     = 60
	nameContains  = 40
	nameSimilar   = 25
	tokenSimilar  = 8
	locationMatch = 20
	amenityMatch  = 5
	maxAmenity    = 15
)

// similarThreshold is the minimum Similarity counted as a fuzzy match.
const similarThreshold = 0.75

// Result is a hostel with its relevance score.
type Result struct {
	Hostel models.Hostel `json:"hostel"`
	Score  int           `json:"score"`
}

// Normalize trims, transliterates to ASCII and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

// Similarity is 1 minus the edit distance relative to the longer string.
// Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1 - float64(d)/float64(longest)
}

// Hostels returns the hostels matching query, best first. Hostels with the
// same score keep name order. An empty query matches nothing.
func Hostels(query string, hostels []models.Hostel) []Result {
	q := Normalize(query)
	if q == "" {
		return []Result{}
	}
	places := placeMatcher(hostels)
	closestPlace := ""
	if places != nil {
		closestPlace = places.Closest(q)
	}

	out := make([]Result, 0, len(hostels))
	for _, h := range hostels {
		if s := score(q, closestPlace, h); s > 0 {
			out = append(out, Result{Hostel: h, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return Normalize(out[i].Hostel.Name) < Normalize(out[j].Hostel.Name)
	})
	return out
}

// placeMatcher indexes the distinct cities and states of hostels.
func placeMatcher(hostels []models.Hostel) *closestmatch.ClosestMatch {
	seen := map[string]bool{}
	var places []string
	for _, h := range hostels {
		for _, p := range []string{h.Location.City, h.Location.State} {
			if n := Normalize(p); n != "" && !seen[n] {
				seen[n] = true
				places = append(places, n)
			}
		}
	}
	if len(places) == 0 {
		return nil
	}
	return closestmatch.New(places, []int{2, 3})
}

func score(q, closestPlace string, h models.Hostel) int {
	name := Normalize(h.Name)
	s := 0
	switch {
	case name == q:
		s += nameExact
	case strings.Contains(name, q):
		s += nameContains
	case Similarity(q, name) >= similarThreshold:
		s += nameSimilar
	}

	qTokens := strings.Fields(q)
	for _, nt := range strings.Fields(name) {
		for _, qt := range qTokens {
			if len(qt) >= 3 && qt != name && Similarity(qt, nt) >= similarThreshold {
				s += tokenSimilar
				break
			}
		}
	}

	if closestPlace != "" && placeMentioned(qTokens, q, closestPlace) {
		city, state := Normalize(h.Location.City), Normalize(h.Location.State)
		if closestPlace == city || closestPlace == state {
			s += locationMatch
		}
	}

	am := 0
	for _, a := range h.Amenities {
		na := Normalize(a)
		if na == "" {
			continue
		}
		if strings.Contains(q, na) || anySimilar(qTokens, na) {
			am += amenityMatch
			if am >= maxAmenity {
				break
			}
		}
	}
	return s + am
}

// placeMentioned reports whether the closest place actually appears in the
// query. closestmatch always answers, even for unrelated input.
func placeMentioned(tokens []string, q, place string) bool {
	return strings.Contains(q, place) || anySimilar(tokens, place)
}

func anySimilar(tokens []string, target string) bool {
	for _, t := range tokens {
		if len(t) >= 3 && Similarity(t, target) >= similarThreshold {
			return true
		}
	}
	return false
}
