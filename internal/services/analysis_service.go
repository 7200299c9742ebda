package services

import (
	"context"
	"encoding/json"

	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/models"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/scoring"
	"github.com/careercompass/api/internal/utils"
	"github.com/google/uuid"
)

// opportunitiesPerCareer is how many postings enrich each recommendation.
const opportunitiesPerCareer = 3

type AnalysisInput struct {
	SkillIDs    []int64  `json:"selectedSkillIds"`
	RiasecCodes []string `json:"selectedRiasec"`
	MbtiCode    string   `json:"selectedMbti"`
}

type Recommendation struct {
	scoring.ScoredCareer
	Opportunities []models.JobListing `json:"opportunities"`
}

type AnalysisService interface {
	Recommend(ctx context.Context, who auth.Identity, in AnalysisInput) ([]Recommendation, error)
}

type analysisService struct {
	careers  CareerService
	jobs     pgrepo.JobRepository
	runs     pgrepo.AnalysisRunRepository
	tracking TrackingService
	opts     scoring.RankOptions
}

func NewAnalysisService(careers CareerService, jobs pgrepo.JobRepository, runs pgrepo.AnalysisRunRepository, tracking TrackingService) AnalysisService {
	return &analysisService{
		careers:  careers,
		jobs:     jobs,
		runs:     runs,
		tracking: tracking,
		opts:     scoring.DefaultRankOptions(),
	}
}

func (s *analysisService) Recommend(ctx context.Context, who auth.Identity, in AnalysisInput) ([]Recommendation, error) {
	const op = "AnalysisService.Recommend"

	profiles, err := s.careers.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(profiles, scoring.NewSelection(in.SkillIDs, in.RiasecCodes, in.MbtiCode), s.opts)

	byCareer, err := s.jobs.LatestByCareerIDs(ctx, scoring.CareerIDs(ranked), opportunitiesPerCareer)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load opportunities", err)
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		jobs := byCareer[r.CareerID]
		if jobs == nil {
			jobs = []models.JobListing{}
		}
		out = append(out, Recommendation{ScoredCareer: r, Opportunities: jobs})
	}

	subject := ""
	if who.Authenticated() {
		subject = who.Subject
	}

	if err := s.recordRun(ctx, subject, in, out); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record analysis run", err)
	}
	if err := s.tracking.SaveHistory(ctx, subject, in, ranked); err != nil {
		return nil, err
	}
	return out, nil
}

// recordRun keeps the caller id only when it is a local account uuid;
// firebase uids do not fit the column.
func (s *analysisService) recordRun(ctx context.Context, subject string, in AnalysisInput, out []Recommendation) error {
	input, err := json.Marshal(in)
	if err != nil {
		return err
	}
	output, err := json.Marshal(out)
	if err != nil {
		return err
	}

	run := &models.AnalysisRun{InputPayload: input, OutputPayload: output}
	if _, err := uuid.Parse(subject); err == nil {
		run.UserID = &subject
	}
	return s.runs.Insert(ctx, run)
}
