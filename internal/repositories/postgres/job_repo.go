package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/careercompass/api/internal/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const linkedInSearchURL = "https://www.linkedin.com/jobs/search/?keywords="

type JobRepository interface {
	EnsureSource(ctx context.Context, key, baseURL string) (*models.JobSource, error)
	// UpsertBatch writes all jobs in one transaction; any failure rolls the
	// whole batch back. It returns the number of rows written.
	UpsertBatch(ctx context.Context, jobs []models.Job) (int, error)
	List(ctx context.Context, f models.JobFilter) ([]models.JobListing, error)
	// LatestByCareerIDs returns up to perCareer postings for each career,
	// newest first.
	LatestByCareerIDs(ctx context.Context, careerIDs []int64, perCareer int) (map[int64][]models.JobListing, error)
}

// jobUpsertConflict refreshes a posting already stored for the same
// (source_id, external_id).
var jobUpsertConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"career_id", "title", "company", "location", "remote_type", "employment_type",
		"salary_min", "salary_max", "salary_currency", "apply_url", "source_url",
		"description", "posted_at", "raw_payload", "fetched_at",
	}),
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

const listingColumns = `j.id, j.external_id, j.career_id, c.title AS career_title, j.title, j.company,
	j.location, j.remote_type, j.employment_type, j.salary_min, j.salary_max, j.salary_currency,
	j.apply_url, j.source_url, j.description, j.posted_at, j.fetched_at, s.source_key AS source`

func (r *jobRepo) EnsureSource(ctx context.Context, key, baseURL string) (*models.JobSource, error) {
	src := models.JobSource{SourceKey: key, BaseURL: baseURL, IsActive: true}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_url", "is_active"}),
		}).
		Create(&src).Error
	if err != nil {
		return nil, err
	}
	return &src, nil
}

func (r *jobRepo) UpsertBatch(ctx context.Context, jobs []models.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	saved := 0
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range jobs {
			jobs[i].FetchedAt = now
			err := tx.Clauses(jobUpsertConflict).Create(&jobs[i]).Error
			if err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

func (r *jobRepo) List(ctx context.Context, f models.JobFilter) ([]models.JobListing, error) {
	tx := r.db.WithContext(ctx).
		Table("jobs j").
		Select(listingColumns).
		Joins("JOIN job_sources s ON s.id = j.source_id").
		Joins("LEFT JOIN careers c ON c.id = j.career_id")

	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("j.title ILIKE ? OR j.company ILIKE ?", like, like)
	}
	if f.CareerID != nil {
		tx = tx.Where("j.career_id = ?", *f.CareerID)
	}

	var rows []models.JobListing
	err := tx.Order("COALESCE(j.posted_at, j.fetched_at) DESC, j.id DESC").
		Limit(f.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].LinkedInURL = LinkedInURL(rows[i].Title, rows[i].Company)
	}
	return rows, nil
}

func (r *jobRepo) LatestByCareerIDs(ctx context.Context, careerIDs []int64, perCareer int) (map[int64][]models.JobListing, error) {
	out := make(map[int64][]models.JobListing, len(careerIDs))
	if len(careerIDs) == 0 || perCareer <= 0 {
		return out, nil
	}

	var rows []models.JobListing
	err := r.db.WithContext(ctx).Raw(`
SELECT ranked.* FROM (
	SELECT `+listingColumns+`,
		ROW_NUMBER() OVER (
			PARTITION BY j.career_id
			ORDER BY COALESCE(j.posted_at, j.fetched_at) DESC, j.id DESC
		) AS rn
	FROM jobs j
	JOIN job_sources s ON s.id = j.source_id
	LEFT JOIN careers c ON c.id = j.career_id
	WHERE j.career_id = ANY(?)
) ranked
WHERE ranked.rn <= ?
ORDER BY ranked.career_id, ranked.rn`, pq.Int64Array(careerIDs), perCareer).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.CareerID == nil {
			continue
		}
		row.LinkedInURL = LinkedInURL(row.Title, row.Company)
		out[*row.CareerID] = append(out[*row.CareerID], row)
	}
	return out, nil
}

// LinkedInURL builds a LinkedIn job search for the posting's title and company.
func LinkedInURL(title, company string) string {
	return linkedInSearchURL + strings.ReplaceAll(title+" "+company, " ", "%20")
}
