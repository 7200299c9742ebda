package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/careercompass/api/internal/models"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/scoring"
	"github.com/careercompass/api/internal/utils"
	"github.com/lib/pq"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// clampLimit maps 0 to def and everything else into [1, max].
func clampLimit(limit, def, max int) int {
	if limit == 0 {
		return def
	}
	return min(maxInt(limit, 1), max)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type TrackingService interface {
	// SaveHistory stores a snapshot of ranked careers. An empty uid is a
	// no-op: anonymous analyses are not tracked.
	SaveHistory(ctx context.Context, uid string, in AnalysisInput, ranked []scoring.ScoredCareer) error
	ListHistory(ctx context.Context, uid string, limit int) ([]models.AnalysisHistory, error)
	BootstrapChecklist(ctx context.Context, uid string, careerID int64) ([]models.ChecklistItem, error)
	ListChecklist(ctx context.Context, uid string, careerID *int64) ([]models.ChecklistItem, error)
	SetChecklistCompletion(ctx context.Context, uid string, itemID int64, completed bool) (*models.ChecklistItem, error)
}

type trackingService struct {
	history   pgrepo.HistoryRepository
	checklist pgrepo.ChecklistRepository
	careers   CareerService
}

func NewTrackingService(history pgrepo.HistoryRepository, checklist pgrepo.ChecklistRepository, careers CareerService) TrackingService {
	return &trackingService{history: history, checklist: checklist, careers: careers}
}

func (s *trackingService) SaveHistory(ctx context.Context, uid string, in AnalysisInput, ranked []scoring.ScoredCareer) error {
	const op = "TrackingService.SaveHistory"

	if uid == "" {
		return nil
	}

	snapshot := make([]models.HistorySnapshotEntry, 0, len(ranked))
	for _, r := range ranked {
		snapshot = append(snapshot, models.HistorySnapshotEntry{
			CareerID: r.CareerID,
			Title:    r.Title,
			Score:    r.Score,
			Breakdown: map[string]float64{
				"skillCoverage":  r.Breakdown.SkillCoverage,
				"riasecCoverage": r.Breakdown.RiasecCoverage,
				"mbtiAlignment":  r.Breakdown.MbtiAlignment,
			},
		})
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode history snapshot", err)
	}

	h := &models.AnalysisHistory{
		FirebaseUID:      uid,
		MbtiCode:         in.MbtiCode,
		RiasecCodes:      pq.StringArray(in.RiasecCodes),
		SelectedSkillIDs: pq.Int64Array(in.SkillIDs),
		TopCareerIDs:     pq.Int64Array(scoring.CareerIDs(ranked)),
		TopSnapshot:      raw,
	}
	if err := s.history.Insert(ctx, h); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save analysis history", err)
	}
	return nil
}

func (s *trackingService) ListHistory(ctx context.Context, uid string, limit int) ([]models.AnalysisHistory, error) {
	const op = "TrackingService.ListHistory"

	if uid == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Authentication required", nil)
	}
	out, err := s.history.ListByUser(ctx, uid, clampLimit(limit, defaultPageLimit, maxPageLimit))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list analysis history", err)
	}
	return out, nil
}

func (s *trackingService) BootstrapChecklist(ctx context.Context, uid string, careerID int64) ([]models.ChecklistItem, error) {
	const op = "TrackingService.BootstrapChecklist"

	if uid == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Authentication required", nil)
	}
	if careerID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "careerId must be a positive integer", nil)
	}

	career, err := s.careers.Requirements(ctx, careerID)
	if err != nil {
		return nil, err
	}

	items := ChecklistItemsFor(uid, career)
	out, err := s.checklist.Bootstrap(ctx, uid, careerID, items)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to bootstrap checklist", err)
	}
	return out, nil
}

// ChecklistItemsFor derives checklist rows from a career's requirements:
// skills first by importance, then certifications, required ones first.
func ChecklistItemsFor(uid string, career *models.Career) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(career.SkillRequirements)+len(career.CertificationRequirements))
	for _, r := range career.SkillRequirements {
		items = append(items, models.ChecklistItem{
			FirebaseUID: uid,
			CareerID:    career.ID,
			ItemType:    models.ItemTypeSkill,
			ItemRefID:   r.SkillID,
			Label:       fmt.Sprintf("%s (%s)", r.Skill.Name, r.MinLevel),
			IsRequired:  true,
		})
	}
	for _, r := range career.CertificationRequirements {
		items = append(items, models.ChecklistItem{
			FirebaseUID: uid,
			CareerID:    career.ID,
			ItemType:    models.ItemTypeCertification,
			ItemRefID:   r.CertificationID,
			Label:       r.Certification.Name,
			IsRequired:  r.IsRequired,
		})
	}
	return items
}

func (s *trackingService) ListChecklist(ctx context.Context, uid string, careerID *int64) ([]models.ChecklistItem, error) {
	const op = "TrackingService.ListChecklist"

	if uid == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Authentication required", nil)
	}
	out, err := s.checklist.List(ctx, uid, careerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list checklist", err)
	}
	return out, nil
}

func (s *trackingService) SetChecklistCompletion(ctx context.Context, uid string, itemID int64, completed bool) (*models.ChecklistItem, error) {
	const op = "TrackingService.SetChecklistCompletion"

	if uid == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Authentication required", nil)
	}
	item, err := s.checklist.SetCompleted(ctx, uid, itemID, completed)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Checklist item not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update checklist item", err)
	}
	return item, nil
}
