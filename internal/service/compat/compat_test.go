package compat

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/spotilove/core/internal/model"
	"github.com/stretchr/testify/assert"
)

type CompatUnitSuite struct {
	suite.Suite
}

type userBuilder struct {
	u model.User
}

func newUserBuilder() *userBuilder {
	return &userBuilder{
		u: model.User{
			ID:          uuid.New(),
			Gender:      "female",
			Orientation: "male",
			Profile: &model.MusicProfile{
				Genres:  []string{"Pop", "Rock"},
				Artists: []string{"Daft Punk"},
				Songs:   []string{"One More Time"},
			},
		},
	}
}

func (b *userBuilder) WithGender(g string) *userBuilder {
	b.u.Gender = g
	return b
}

func (b *userBuilder) WithOrientation(o string) *userBuilder {
	b.u.Orientation = o
	return b
}

func (b *userBuilder) WithProfile(genres, artists, songs []string) *userBuilder {
	b.u.Profile = &model.MusicProfile{
		UserID:  b.u.ID,
		Genres:  genres,
		Artists: artists,
		Songs:   songs,
	}
	return b
}

func (b *userBuilder) Build() model.User {
	return b.u
}

func mutualPair() (model.User, model.User) {
	a := newUserBuilder().WithGender("female").WithOrientation("male").Build()
	b := newUserBuilder().WithGender("male").WithOrientation("female").Build()
	return a, b
}

func (s *CompatUnitSuite) TestScoreSymmetry(t provider.T) {
	t.Parallel()

	a, b := mutualPair()
	a = newUserBuilder().
		WithGender(a.Gender).WithOrientation(a.Orientation).
		WithProfile([]string{"pop", "jazz"}, []string{"Adele", "SZA"}, []string{"Hello"}).
		Build()
	b = newUserBuilder().
		WithGender(b.Gender).WithOrientation(b.Orientation).
		WithProfile([]string{"Pop"}, []string{"sza"}, []string{"Anti-Hero", "Hello"}).
		Build()

	assert.Equal(t, New().Score(a, b), New().Score(b, a))
}

func (s *CompatUnitSuite) TestScoreBounds(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name string
		a    func() model.User
		b    func() model.User
	}{
		{
			name: "Identical profiles with mutual attraction",
			a: func() model.User {
				a, _ := mutualPair()
				return a
			},
			b: func() model.User {
				_, b := mutualPair()
				return b
			},
		},
		{
			name: "Disjoint profiles without attraction",
			a: func() model.User {
				return newUserBuilder().
					WithOrientation("").
					WithProfile([]string{"metal"}, []string{"Metallica"}, []string{"One"}).
					Build()
			},
			b: func() model.User {
				return newUserBuilder().
					WithOrientation("").
					WithProfile([]string{"pop"}, []string{"Adele"}, []string{"Hello"}).
					Build()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			score := New().Score(tc.a(), tc.b())

			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
			assert.Equal(t, math.Round(score*100)/100, score)
		})
	}
}

func (s *CompatUnitSuite) TestEmptyDimensionsScoreZero(t provider.T) {
	t.Parallel()

	a := newUserBuilder().WithProfile(nil, nil, nil).Build()
	b := newUserBuilder().WithProfile([]string{"pop"}, []string{"Adele"}, []string{"Hello"}).Build()

	assert.Equal(t, 0.0, New().MusicScore(a.Profile, b.Profile))
	assert.Equal(t, 0.0, New().MusicScore(nil, b.Profile))
}

func (s *CompatUnitSuite) TestMutualAttractionGate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(a, b *model.User)
		expected float64
	}{
		{
			name:     "Mutual attraction scores the full gate",
			mutate:   func(a, b *model.User) {},
			expected: 20.0,
		},
		{
			name: "One-directional attraction keeps the gate at zero",
			mutate: func(a, b *model.User) {
				b.Orientation = "male"
			},
			expected: 0.0,
		},
		{
			name: "Unset orientation is never satisfied",
			mutate: func(a, b *model.User) {
				a.Orientation = ""
			},
			expected: 0.0,
		},
		{
			name: "Both matches any gender",
			mutate: func(a, b *model.User) {
				a.Orientation = "both"
			},
			expected: 20.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			a, b := mutualPair()
			// Disjoint tastes isolate the preference component.
			a.Profile = &model.MusicProfile{Genres: []string{"metal"}}
			b.Profile = &model.MusicProfile{Genres: []string{"pop"}}
			tc.mutate(&a, &b)

			assert.Equal(t, tc.expected, New().Score(a, b))
		})
	}
}

func (s *CompatUnitSuite) TestAttractionMismatchCapsScore(t provider.T) {
	t.Parallel()

	a, _ := mutualPair()
	b, _ := mutualPair()
	// Same gender and straight orientations: musically identical, no gate.
	b.Gender = a.Gender
	b.Orientation = a.Orientation
	b.Profile = a.Profile

	assert.Equal(t, 80.0, New().Score(a, b))
}

func (s *CompatUnitSuite) TestNormalizationFoldsCaseAndSpace(t provider.T) {
	t.Parallel()

	a, b := mutualPair()
	a.Profile = &model.MusicProfile{Genres: []string{" Pop ", "ROCK"}}
	b.Profile = &model.MusicProfile{Genres: []string{"pop", "rock"}}

	// Genres fully overlap: 100 * 0.30 * 0.80 + gate.
	assert.Equal(t, 44.0, New().Score(a, b))
}

func TestCompatUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CompatUnitSuite))
}
