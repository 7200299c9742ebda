// Package scoring computes how well a user's selections fit a catalog career.
// Everything here is pure; callers load profiles and persist results.
package scoring

import (
	"math"
	"math/big"
	"slices"
)

const (
	WeightSkills = 0.5
	WeightRiasec = 0.3
	WeightMbti   = 0.2

	// MaxScore keeps a perfect match from reading as a guarantee.
	MaxScore = 99
)

// Score evaluates one career against a selection.
func Score(career CareerProfile, sel Selection) ScoredCareer {
	var (
		totalSkill, matchedSkill   float64
		totalRiasec, matchedRiasec float64
		mbtiAlignment              float64
	)

	matched := Matched{Skills: []string{}, Riasec: []string{}}
	gaps := make([]SkillGap, 0)

	for _, req := range career.RequiredSkills {
		w := weight(req.Importance)
		totalSkill += w
		if sel.HasSkill(req.SkillID) {
			matchedSkill += w
			matched.Skills = append(matched.Skills, req.Name)
			continue
		}
		gaps = append(gaps, SkillGap{
			SkillID:          req.SkillID,
			SkillName:        req.Name,
			Importance:       w,
			RecommendedLevel: req.MinLevel,
		})
	}

	for _, r := range career.Riasec {
		w := weight(r.Weight)
		totalRiasec += w
		if sel.HasRiasec(r.Code) {
			matchedRiasec += w
			matched.Riasec = append(matched.Riasec, r.Code)
		}
	}

	// MBTI alignment is the first matching entry's own weight.
	if code := sel.Mbti(); code != "" {
		for _, m := range career.Mbti {
			if m.Code == code {
				mbtiAlignment = min(weight(m.Weight), 1)
				matched.Mbti = &code
				break
			}
		}
	}

	skillCoverage := ratio(matchedSkill, totalSkill)
	riasecCoverage := ratio(matchedRiasec, totalRiasec)

	composite := skillCoverage*WeightSkills + riasecCoverage*WeightRiasec + mbtiAlignment*WeightMbti
	score := int(math.Floor(composite*100 + 0.5))
	score = min(max(score, 0), MaxScore)

	slices.SortStableFunc(gaps, func(a, b SkillGap) int {
		switch {
		case a.Importance > b.Importance:
			return -1
		case a.Importance < b.Importance:
			return 1
		}
		return 0
	})

	certs := make([]Certification, len(career.Certifications))
	copy(certs, career.Certifications)

	return ScoredCareer{
		CareerID:        career.ID,
		Slug:            career.Slug,
		Title:           career.Title,
		Description:     career.Description,
		ExperienceLevel: career.ExperienceLevel,
		MedianSalaryUSD: career.MedianSalaryUSD,
		Score:           score,
		Breakdown: Breakdown{
			SkillCoverage:  percentTenth(skillCoverage),
			RiasecCoverage: percentTenth(riasecCoverage),
			MbtiAlignment:  percentTenth(mbtiAlignment),
		},
		Matched:        matched,
		SkillGaps:      gaps,
		Certifications: certs,
	}
}

// weight coerces malformed or negative weights to zero.
func weight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func ratio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return min(max(part/total, 0), 1)
}

// percentTenth renders a [0,1] ratio as a percentage with one decimal,
// rounding half up on the exact binary value.
func percentTenth(r float64) float64 {
	v := r * 100
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	x := new(big.Float).SetPrec(128).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)
	return float64(n.Int64()) / 10
}
