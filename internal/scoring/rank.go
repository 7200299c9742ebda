package scoring

import "slices"

type RankOptions struct {
	// MinScore drops careers scoring below it.
	MinScore int
	// TopN caps the result. Zero or negative means no cap.
	TopN int
}

func DefaultRankOptions() RankOptions {
	return RankOptions{MinScore: 20, TopN: 8}
}

// Rank scores every career, drops weak fits and returns the best first.
// Ties keep catalog order.
func Rank(careers []CareerProfile, sel Selection, opts RankOptions) []ScoredCareer {
	out := make([]ScoredCareer, 0, len(careers))
	for _, c := range careers {
		sc := Score(c, sel)
		if sc.Score < opts.MinScore {
			continue
		}
		out = append(out, sc)
	}

	slices.SortStableFunc(out, func(a, b ScoredCareer) int {
		return b.Score - a.Score
	})

	if opts.TopN > 0 && len(out) > opts.TopN {
		out = out[:opts.TopN]
	}
	return out
}

// CareerIDs returns the ids of ranked careers in order.
func CareerIDs(ranked []ScoredCareer) []int64 {
	ids := make([]int64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.CareerID
	}
	return ids
}
