package services

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/careercompass/api/internal/cache"
	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/reconcile"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/scoring"
	"github.com/careercompass/api/internal/utils"
	"github.com/sirupsen/logrus"
)

const careerProfilesCacheKey = "careers:profiles:v1"

type CareerPathSkill struct {
	SkillID    int64   `json:"skillId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Importance float64 `json:"importance"`
	MinLevel   string  `json:"minLevel"`
}

// CareerPath is one entry of the browsable career catalog.
type CareerPath struct {
	CareerID        int64                   `json:"careerId"`
	Slug            string                  `json:"slug"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	ExperienceLevel string                  `json:"experienceLevel"`
	MedianSalaryUSD *int64                  `json:"medianSalaryUsd"`
	RequiredSkills  []CareerPathSkill       `json:"requiredSkills"`
	Certifications  []scoring.Certification `json:"certifications"`
}

type CareerService interface {
	// Profiles returns the active catalog in title order, cached.
	Profiles(ctx context.Context) ([]scoring.CareerProfile, error)
	Paths(ctx context.Context, q string) ([]CareerPath, error)
	Requirements(ctx context.Context, careerID int64) (*models.Career, error)
	Candidates(ctx context.Context) ([]reconcile.Candidate, error)
	Invalidate(ctx context.Context) error
}

type careerService struct {
	careers pgrepo.CareerRepository
	cache   cache.Cache
	ttl     time.Duration
	log     *logrus.Entry
}

func NewCareerService(careers pgrepo.CareerRepository, c cache.Cache, ttl time.Duration, log *logrus.Entry) CareerService {
	if c == nil {
		c = cache.Noop{}
	}
	return &careerService{careers: careers, cache: c, ttl: ttl, log: log}
}

func (s *careerService) Profiles(ctx context.Context) ([]scoring.CareerProfile, error) {
	const op = "CareerService.Profiles"

	var cached []scoring.CareerProfile
	if s.ttl > 0 {
		hit, err := s.cache.GetJSON(ctx, careerProfilesCacheKey, &cached)
		if err != nil {
			s.log.WithError(err).Warn("career cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	rows, err := s.careers.ListProfiles(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load careers", err)
	}

	out := make([]scoring.CareerProfile, 0, len(rows))
	for _, c := range rows {
		out = append(out, toProfile(c))
	}

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, careerProfilesCacheKey, out, s.ttl); err != nil {
			s.log.WithError(err).Warn("career cache write failed")
		}
	}
	return out, nil
}

func (s *careerService) Paths(ctx context.Context, q string) ([]CareerPath, error) {
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q))
	out := make([]CareerPath, 0, len(profiles))
	for _, p := range profiles {
		if search != "" {
			haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.ExperienceLevel)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, toPath(p))
	}
	return out, nil
}

func (s *careerService) Requirements(ctx context.Context, careerID int64) (*models.Career, error) {
	const op = "CareerService.Requirements"

	c, err := s.careers.GetWithRequirements(ctx, careerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Career not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load career", err)
	}
	sortCertifications(c.CertificationRequirements)
	return c, nil
}

func (s *careerService) Candidates(ctx context.Context) ([]reconcile.Candidate, error) {
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.Candidate, len(profiles))
	for i, p := range profiles {
		out[i] = reconcile.Candidate{ID: p.ID, Title: p.Title, Slug: p.Slug}
	}
	return out, nil
}

func (s *careerService) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, careerProfilesCacheKey)
}

// sortCertifications orders required certifications first, then by name.
func sortCertifications(reqs []models.CareerCertificationRequirement) {
	slices.SortStableFunc(reqs, func(a, b models.CareerCertificationRequirement) int {
		if a.IsRequired != b.IsRequired {
			if a.IsRequired {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Certification.Name, b.Certification.Name)
	})
}

func toProfile(c models.Career) scoring.CareerProfile {
	p := scoring.CareerProfile{
		ID:              c.ID,
		Slug:            c.Slug,
		Title:           c.Title,
		Description:     c.Description,
		ExperienceLevel: c.ExperienceLevel,
		MedianSalaryUSD: c.MedianSalaryUSD,
		RequiredSkills:  make([]scoring.RequiredSkill, 0, len(c.SkillRequirements)),
		Riasec:          make([]scoring.TraitWeight, 0, len(c.Riasec)),
		Mbti:            make([]scoring.TraitWeight, 0, len(c.Mbti)),
		Certifications:  make([]scoring.Certification, 0, len(c.CertificationRequirements)),
	}
	for _, r := range c.SkillRequirements {
		p.RequiredSkills = append(p.RequiredSkills, scoring.RequiredSkill{
			SkillID:    r.SkillID,
			Name:       r.Skill.Name,
			Category:   r.Skill.Category,
			Importance: r.Importance,
			MinLevel:   r.MinLevel,
		})
	}
	for _, r := range c.Riasec {
		p.Riasec = append(p.Riasec, scoring.TraitWeight{Code: strings.TrimSpace(r.RiasecCode), Weight: r.Weight})
	}
	for _, m := range c.Mbti {
		p.Mbti = append(p.Mbti, scoring.TraitWeight{Code: strings.TrimSpace(m.MbtiCode), Weight: m.Weight})
	}

	certs := slices.Clone(c.CertificationRequirements)
	sortCertifications(certs)
	for _, r := range certs {
		p.Certifications = append(p.Certifications, scoring.Certification{
			CertificationID: r.CertificationID,
			Name:            r.Certification.Name,
			Provider:        r.Certification.Provider,
			IsRequired:      r.IsRequired,
			Notes:           r.Notes,
		})
	}
	return p
}

func toPath(p scoring.CareerProfile) CareerPath {
	skills := make([]CareerPathSkill, 0, len(p.RequiredSkills))
	for _, r := range p.RequiredSkills {
		skills = append(skills, CareerPathSkill{
			SkillID:    r.SkillID,
			Name:       r.Name,
			Category:   r.Category,
			Importance: r.Importance,
			MinLevel:   r.MinLevel,
		})
	}
	certs := p.Certifications
	if certs == nil {
		certs = []scoring.Certification{}
	}
	return CareerPath{
		CareerID:        p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Description:     p.Description,
		ExperienceLevel: p.ExperienceLevel,
		MedianSalaryUSD: p.MedianSalaryUSD,
		RequiredSkills:  skills,
		Certifications:  certs,
	}
}
