package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataScientist() CareerProfile {
	return CareerProfile{
		ID:    7,
		Slug:  "data-scientist",
		Title: "Data Scientist",
		RequiredSkills: []RequiredSkill{
			{SkillID: 1, Name: "Data Analysis", Importance: 3, MinLevel: "advanced"},
			{SkillID: 2, Name: "Research", Importance: 2, MinLevel: "intermediate"},
		},
		Riasec: []TraitWeight{{Code: "I", Weight: 0.6}, {Code: "C", Weight: 0.4}},
		// MBTI weights sum to 1.7.
		Mbti: []TraitWeight{{Code: "INTJ", Weight: 0.5}, {Code: "INTP", Weight: 0.3}, {Code: "ENTJ", Weight: 0.9}},
	}
}

func TestScoreWorkedExample(t *testing.T) {
	got := Score(dataScientist(), NewSelection([]int64{1}, []string{"I"}, "INTJ"))

	assert.Equal(t, 58, got.Score)
	assert.Equal(t, Breakdown{SkillCoverage: 60, RiasecCoverage: 60, MbtiAlignment: 50}, got.Breakdown)
	assert.Equal(t, []string{"Data Analysis"}, got.Matched.Skills)
	assert.Equal(t, []string{"I"}, got.Matched.Riasec)
	require.NotNil(t, got.Matched.Mbti)
	assert.Equal(t, "INTJ", *got.Matched.Mbti)

	require.Len(t, got.SkillGaps, 1)
	assert.Equal(t, SkillGap{SkillID: 2, SkillName: "Research", Importance: 2, RecommendedLevel: "intermediate"}, got.SkillGaps[0])
}

func TestScoreCeilingIs99(t *testing.T) {
	got := Score(dataScientist(), NewSelection([]int64{1, 2}, []string{"I", "C"}, "INTJ"))
	// skills 1.0, riasec 1.0, mbti 0.5 -> 90
	assert.Equal(t, 90, got.Score)

	perfect := dataScientist()
	perfect.Mbti = []TraitWeight{{Code: "INTJ", Weight: 1}}
	got = Score(perfect, NewSelection([]int64{1, 2}, []string{"I", "C"}, "INTJ"))
	assert.Equal(t, MaxScore, got.Score)
	assert.Equal(t, 100.0, got.Breakdown.SkillCoverage)
}

func TestScoreEmptyDimensionsContributeZero(t *testing.T) {
	c := CareerProfile{ID: 1, Title: "Blank"}
	got := Score(c, NewSelection([]int64{1}, []string{"R"}, "ENFP"))

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, Breakdown{}, got.Breakdown)
	assert.Empty(t, got.SkillGaps)
	assert.NotNil(t, got.Matched.Skills)
	assert.NotNil(t, got.Matched.Riasec)
}

func TestScoreNoMbtiSelected(t *testing.T) {
	got := Score(dataScientist(), NewSelection(nil, nil, ""))
	assert.Nil(t, got.Matched.Mbti)
	assert.Equal(t, 0, got.Score)
	assert.Len(t, got.SkillGaps, 2)
}

func TestScoreMbtiIsMatchingEntryWeight(t *testing.T) {
	single := dataScientist()
	single.Mbti = []TraitWeight{{Code: "INTJ", Weight: 0.5}}
	sel := NewSelection([]int64{1}, []string{"I"}, "INTJ")

	for _, c := range []CareerProfile{single, dataScientist()} {
		got := Score(c, sel)
		assert.Equal(t, 58, got.Score)
		assert.Equal(t, 50.0, got.Breakdown.MbtiAlignment)
	}

	got := Score(dataScientist(), NewSelection([]int64{1}, []string{"I"}, "ENTJ"))
	assert.Equal(t, 90.0, got.Breakdown.MbtiAlignment)
	assert.Equal(t, 66, got.Score)
}

func TestScoreMbtiWeightClampedToOne(t *testing.T) {
	c := dataScientist()
	c.Mbti = []TraitWeight{{Code: "INTJ", Weight: 1.4}, {Code: "INTJ", Weight: 0.2}}

	got := Score(c, NewSelection(nil, nil, "INTJ"))
	assert.Equal(t, 100.0, got.Breakdown.MbtiAlignment)
	assert.Equal(t, 20, got.Score)
}

func TestScoreUnmatchedMbtiLeavesMatchedNil(t *testing.T) {
	got := Score(dataScientist(), NewSelection([]int64{1}, []string{"I"}, "ESFP"))

	assert.Nil(t, got.Matched.Mbti)
	assert.Equal(t, 0.0, got.Breakdown.MbtiAlignment)
	assert.Equal(t, 48, got.Score)
}

func TestScoreMalformedWeightsCoercedToZero(t *testing.T) {
	c := CareerProfile{
		ID: 3,
		RequiredSkills: []RequiredSkill{
			{SkillID: 1, Name: "A", Importance: math.NaN()},
			{SkillID: 2, Name: "B", Importance: 4},
			{SkillID: 3, Name: "C", Importance: -2},
		},
	}
	got := Score(c, NewSelection([]int64{1}, nil, ""))

	assert.Equal(t, 0.0, got.Breakdown.SkillCoverage)
	require.Len(t, got.SkillGaps, 2)
	assert.Equal(t, "B", got.SkillGaps[0].SkillName)
	assert.Equal(t, 0.0, got.SkillGaps[1].Importance)
}

func TestScoreSkillGapsOrderedByImportance(t *testing.T) {
	c := CareerProfile{
		RequiredSkills: []RequiredSkill{
			{SkillID: 1, Name: "low", Importance: 1},
			{SkillID: 2, Name: "high", Importance: 5},
			{SkillID: 3, Name: "mid-a", Importance: 3},
			{SkillID: 4, Name: "mid-b", Importance: 3},
		},
	}
	got := Score(c, NewSelection(nil, nil, ""))

	names := make([]string, 0, len(got.SkillGaps))
	for _, g := range got.SkillGaps {
		names = append(names, g.SkillName)
	}
	assert.Equal(t, []string{"high", "mid-a", "mid-b", "low"}, names)
}

func TestScoreCopiesCertifications(t *testing.T) {
	note := "vendor neutral"
	c := dataScientist()
	c.Certifications = []Certification{{CertificationID: 9, Name: "TensorFlow Developer", Provider: "Google", IsRequired: false, Notes: &note}}

	got := Score(c, NewSelection(nil, nil, ""))
	require.Len(t, got.Certifications, 1)
	assert.Equal(t, c.Certifications[0], got.Certifications[0])

	got.Certifications[0].Name = "changed"
	assert.Equal(t, "TensorFlow Developer", c.Certifications[0].Name)
}

func TestPercentTenth(t *testing.T) {
	assert.Equal(t, 60.0, percentTenth(0.6))
	assert.Equal(t, 33.3, percentTenth(1.0/3.0))
	assert.Equal(t, 66.7, percentTenth(2.0/3.0))
	assert.Equal(t, 12.5, percentTenth(0.125))
	assert.Equal(t, 0.0, percentTenth(0))
	assert.Equal(t, 100.0, percentTenth(1))
}

func TestRatioClamps(t *testing.T) {
	assert.Equal(t, 0.0, ratio(1, 0))
	assert.Equal(t, 1.0, ratio(3, 2))
	assert.Equal(t, 0.5, ratio(1, 2))
}
