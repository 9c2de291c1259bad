package compat

import (
	"math"
	"strings"

	"github.com/spotilove/core/internal/model"
)

// Fixed weights of the three taste dimensions, and the split between the
// music score and the mutual-attraction gate.
const (
	genreWeight  = 0.30
	artistWeight = 0.40
	songWeight   = 0.30

	musicWeight      = 0.80
	preferenceWeight = 0.20
)

type Scorer struct{}

func New() *Scorer {
	return &Scorer{}
}

// Score computes the compatibility between two users in [0, 100].
// It is deterministic, symmetric and never fails: empty taste sets
// contribute 0 instead of erroring out.
func (s *Scorer) Score(a, b model.User) float64 {
	music := s.MusicScore(a.Profile, b.Profile)
	pref := preferenceScore(a, b)

	return round2(music*musicWeight + pref*preferenceWeight)
}

// MusicScore is the weighted Jaccard similarity of two taste profiles in [0, 100].
func (s *Scorer) MusicScore(a, b *model.MusicProfile) float64 {
	if a == nil || b == nil {
		return 0
	}

	genre := jaccard(a.Genres, b.Genres)
	artist := jaccard(a.Artists, b.Artists)
	song := jaccard(a.Songs, b.Songs)

	return genre*genreWeight + artist*artistWeight + song*songWeight
}

// preferenceScore is 100 only when the attraction holds in both directions.
// An unset orientation is never satisfied.
func preferenceScore(a, b model.User) float64 {
	if isAttractedTo(a.Orientation, b.Gender) && isAttractedTo(b.Orientation, a.Gender) {
		return 100
	}
	return 0
}

func isAttractedTo(orientation, gender string) bool {
	if strings.TrimSpace(orientation) == "" {
		return false
	}
	o := strings.ToLower(orientation)
	return o == model.OrientationBoth || o == strings.ToLower(gender)
}

// jaccard returns |A∩B| / |A∪B| * 100 over case-folded, trimmed labels.
// Either side empty yields 0: no data is no evidence of compatibility.
func jaccard(a, b []string) float64 {
	setA := normalize(a)
	setB := normalize(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for label := range setA {
		if _, ok := setB[label]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union) * 100
}

func normalize(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		set[l] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
