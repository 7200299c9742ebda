package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/providers/jobs"
	"github.com/careercompass/api/internal/utils"
	"github.com/sirupsen/logrus"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.sets++
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeCareerRepo struct {
	careers []models.Career
	calls   int
}

func (r *fakeCareerRepo) ListProfiles(context.Context) ([]models.Career, error) {
	r.calls++
	return r.careers, nil
}

func (r *fakeCareerRepo) GetWithRequirements(_ context.Context, id int64) (*models.Career, error) {
	for i := range r.careers {
		if r.careers[i].ID == id {
			c := r.careers[i]
			return &c, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeJobRepo struct {
	sources   map[string]*models.JobSource
	saved     []models.Job
	upsertErr error
	listed    models.JobFilter
	latest    map[int64][]models.JobListing
	latestIDs []int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{sources: map[string]*models.JobSource{}}
}

func (r *fakeJobRepo) EnsureSource(_ context.Context, key, baseURL string) (*models.JobSource, error) {
	if s, ok := r.sources[key]; ok {
		s.BaseURL = baseURL
		return s, nil
	}
	s := &models.JobSource{ID: int64(len(r.sources) + 1), SourceKey: key, BaseURL: baseURL, IsActive: true}
	r.sources[key] = s
	return s, nil
}

func (r *fakeJobRepo) UpsertBatch(_ context.Context, rows []models.Job) (int, error) {
	if r.upsertErr != nil {
		return 0, r.upsertErr
	}
	r.saved = append(r.saved, rows...)
	return len(rows), nil
}

func (r *fakeJobRepo) List(_ context.Context, f models.JobFilter) ([]models.JobListing, error) {
	r.listed = f
	return []models.JobListing{}, nil
}

func (r *fakeJobRepo) LatestByCareerIDs(_ context.Context, ids []int64, _ int) (map[int64][]models.JobListing, error) {
	r.latestIDs = ids
	if r.latest == nil {
		return map[int64][]models.JobListing{}, nil
	}
	return r.latest, nil
}

type fakeRunRepo struct {
	runs []models.AnalysisRun
}

func (r *fakeRunRepo) Insert(_ context.Context, run *models.AnalysisRun) error {
	r.runs = append(r.runs, *run)
	return nil
}

type fakeHistoryRepo struct {
	rows      []models.AnalysisHistory
	lastLimit int
}

func (r *fakeHistoryRepo) Insert(_ context.Context, h *models.AnalysisHistory) error {
	h.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *h)
	return nil
}

func (r *fakeHistoryRepo) ListByUser(_ context.Context, uid string, limit int) ([]models.AnalysisHistory, error) {
	r.lastLimit = limit
	out := []models.AnalysisHistory{}
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].FirebaseUID == uid {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

type checklistKey struct {
	uid      string
	careerID int64
	itemType models.ChecklistItemType
	refID    int64
}

type fakeChecklistRepo struct {
	items []models.ChecklistItem
}

func (r *fakeChecklistRepo) Bootstrap(_ context.Context, uid string, careerID int64, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	seen := map[checklistKey]bool{}
	for _, it := range r.items {
		seen[checklistKey{it.FirebaseUID, it.CareerID, it.ItemType, it.ItemRefID}] = true
	}
	for _, it := range items {
		k := checklistKey{it.FirebaseUID, it.CareerID, it.ItemType, it.ItemRefID}
		if seen[k] {
			continue
		}
		seen[k] = true
		it.ID = int64(len(r.items) + 1)
		r.items = append(r.items, it)
	}
	cid := careerID
	return r.List(context.Background(), uid, &cid)
}

func (r *fakeChecklistRepo) List(_ context.Context, uid string, careerID *int64) ([]models.ChecklistItem, error) {
	out := []models.ChecklistItem{}
	for _, it := range r.items {
		if it.FirebaseUID != uid {
			continue
		}
		if careerID != nil && it.CareerID != *careerID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeChecklistRepo) SetCompleted(_ context.Context, uid string, itemID int64, completed bool) (*models.ChecklistItem, error) {
	for i := range r.items {
		it := &r.items[i]
		if it.ID != itemID || it.FirebaseUID != uid {
			continue
		}
		it.Completed = completed
		it.CompletedAt = nil
		if completed {
			now := time.Now()
			it.CompletedAt = &now
		}
		c := *it
		return &c, nil
	}
	return nil, utils.ErrNotFound
}

type fakeProvider struct {
	postings []jobs.Posting
	err      error
	got      jobs.Query
}

func (p *fakeProvider) Key() string     { return "fake" }
func (p *fakeProvider) BaseURL() string { return "https://jobs.test" }

func (p *fakeProvider) Fetch(_ context.Context, q jobs.Query) ([]jobs.Posting, error) {
	p.got = q
	if p.err != nil {
		return nil, p.err
	}
	return p.postings, nil
}

type fakeSyncRuns struct {
	runs []models.SyncRun
	err  error
}

func (r *fakeSyncRuns) Insert(_ context.Context, run *models.SyncRun) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, *run)
	return nil
}

func (r *fakeSyncRuns) Recent(_ context.Context, limit int) ([]models.SyncRun, error) {
	if len(r.runs) > limit {
		return r.runs[:limit], nil
	}
	return r.runs, nil
}

type published struct {
	channel string
	payload any
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload any) error {
	p.msgs = append(p.msgs, published{channel, payload})
	return p.err
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*models.User{}} }

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.Email]; ok {
		return errors.New("duplicate key")
	}
	u.CreatedAt = time.Now()
	r.users[u.Email] = u
	return nil
}

type fakeLookupRepo struct {
	calls   int
	pingErr error
}

func (r *fakeLookupRepo) RiasecCodes(context.Context) ([]models.RiasecCode, error) {
	r.calls++
	return []models.RiasecCode{{Code: "R", Name: "Realistic"}, {Code: "I", Name: "Investigative"}}, nil
}

func (r *fakeLookupRepo) MbtiTypes(context.Context) ([]models.MbtiType, error) {
	return []models.MbtiType{{Code: "INTJ", Title: "Architect"}}, nil
}

func (r *fakeLookupRepo) Skills(context.Context) ([]models.Skill, error) {
	return []models.Skill{{ID: 1, Name: "Data Analysis", Category: "analytics"}}, nil
}

func (r *fakeLookupRepo) WorldStats(context.Context) ([]models.WorldStat, error) {
	return []models.WorldStat{{MetricKey: "unemployment", SortOrder: 1}}, nil
}

func (r *fakeLookupRepo) Ping(context.Context) error { return r.pingErr }

// sampleCareers is a small catalog in title order.
func sampleCareers() []models.Career {
	notes := "vendor neutral"
	return []models.Career{
		{
			ID: 1, Slug: "data-scientist", Title: "Data Scientist",
			Description: "Builds models", ExperienceLevel: "mid",
			SkillRequirements: []models.CareerSkillRequirement{
				{CareerID: 1, SkillID: 1, Importance: 3, MinLevel: "advanced", Skill: models.Skill{ID: 1, Name: "Data Analysis", Category: "analytics"}},
				{CareerID: 1, SkillID: 2, Importance: 2, MinLevel: "intermediate", Skill: models.Skill{ID: 2, Name: "Research", Category: "science"}},
			},
			Riasec: []models.CareerRiasec{{CareerID: 1, RiasecCode: "I", Weight: 0.6}, {CareerID: 1, RiasecCode: "C", Weight: 0.4}},
			Mbti:   []models.CareerMbti{{CareerID: 1, MbtiCode: "INTJ", Weight: 0.5}, {CareerID: 1, MbtiCode: "ENTJ", Weight: 0.9}},
			CertificationRequirements: []models.CareerCertificationRequirement{
				{CareerID: 1, CertificationID: 5, IsRequired: false, Certification: models.Certification{ID: 5, Name: "Azure Data Scientist", Provider: "Microsoft"}},
				{CareerID: 1, CertificationID: 6, IsRequired: true, Notes: &notes, Certification: models.Certification{ID: 6, Name: "TensorFlow Developer", Provider: "Google"}},
				{CareerID: 1, CertificationID: 7, IsRequired: false, Certification: models.Certification{ID: 7, Name: "AWS ML Specialty", Provider: "Amazon"}},
			},
		},
		{
			ID: 2, Slug: "ux-designer", Title: "UX Designer",
			Description: "Designs interfaces", ExperienceLevel: "entry",
			SkillRequirements: []models.CareerSkillRequirement{
				{CareerID: 2, SkillID: 3, Importance: 3, MinLevel: "intermediate", Skill: models.Skill{ID: 3, Name: "Wireframing", Category: "design"}},
			},
			Riasec: []models.CareerRiasec{{CareerID: 2, RiasecCode: "A", Weight: 1}},
		},
	}
}
