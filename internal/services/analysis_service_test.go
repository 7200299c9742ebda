package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analysisFixture struct {
	svc     AnalysisService
	jobs    *fakeJobRepo
	runs    *fakeRunRepo
	history *fakeHistoryRepo
}

func newAnalysisFixture() analysisFixture {
	careers := NewCareerService(&fakeCareerRepo{careers: sampleCareers()}, nil, 0, testLog())
	jobs := newFakeJobRepo()
	runs := &fakeRunRepo{}
	history := &fakeHistoryRepo{}
	tracking := NewTrackingService(history, &fakeChecklistRepo{}, careers)
	return analysisFixture{
		svc:     NewAnalysisService(careers, jobs, runs, tracking),
		jobs:    jobs,
		runs:    runs,
		history: history,
	}
}

var dataScienceInput = AnalysisInput{SkillIDs: []int64{1}, RiasecCodes: []string{"I"}, MbtiCode: "INTJ"}

func TestRecommendAnonymous(t *testing.T) {
	f := newAnalysisFixture()
	f.jobs.latest = map[int64][]models.JobListing{
		1: {{ID: 10, Title: "Senior Data Scientist"}},
	}

	got, err := f.svc.Recommend(context.Background(), auth.Anonymous(), dataScienceInput)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].CareerID)
	assert.Equal(t, 58, got[0].Score)
	require.Len(t, got[0].Opportunities, 1)
	assert.Equal(t, int64(10), got[0].Opportunities[0].ID)
	assert.Equal(t, []int64{1}, f.jobs.latestIDs)

	require.Len(t, f.runs.runs, 1)
	assert.Nil(t, f.runs.runs[0].UserID)
	assert.Empty(t, f.history.rows)
}

func TestRecommendOpportunitiesNeverNil(t *testing.T) {
	f := newAnalysisFixture()

	got, err := f.svc.Recommend(context.Background(), auth.Anonymous(), dataScienceInput)
	require.NoError(t, err)
	require.Len(t, got, 1)

	raw, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"opportunities":[]`)
	assert.Contains(t, string(raw), `"careerId":1`)
}

func TestRecommendRecordsRunInput(t *testing.T) {
	f := newAnalysisFixture()

	_, err := f.svc.Recommend(context.Background(), auth.Anonymous(), dataScienceInput)
	require.NoError(t, err)

	var in AnalysisInput
	require.NoError(t, json.Unmarshal(f.runs.runs[0].InputPayload, &in))
	assert.Equal(t, dataScienceInput, in)
}

func TestRecommendLocalAccountKeepsUserID(t *testing.T) {
	f := newAnalysisFixture()
	subject := "5b0c8a1e-3f7d-4c2a-9e61-0d2f4b8a7c13"
	who := auth.Identity{Kind: auth.KindMock, Subject: subject, Role: "user"}

	_, err := f.svc.Recommend(context.Background(), who, dataScienceInput)
	require.NoError(t, err)

	require.NotNil(t, f.runs.runs[0].UserID)
	assert.Equal(t, subject, *f.runs.runs[0].UserID)
	require.Len(t, f.history.rows, 1)
	assert.Equal(t, subject, f.history.rows[0].FirebaseUID)
}

func TestRecommendFirebaseUserDropsNonUUID(t *testing.T) {
	f := newAnalysisFixture()
	who := auth.Identity{Kind: auth.KindFirebase, Subject: "fb-uid-42"}

	_, err := f.svc.Recommend(context.Background(), who, dataScienceInput)
	require.NoError(t, err)

	assert.Nil(t, f.runs.runs[0].UserID)
	require.Len(t, f.history.rows, 1)
	assert.Equal(t, "fb-uid-42", f.history.rows[0].FirebaseUID)
}

func TestRecommendRejectedTokenIsAnonymous(t *testing.T) {
	f := newAnalysisFixture()
	who := auth.Identity{Kind: auth.KindAnonymous, Rejection: "token expired"}

	_, err := f.svc.Recommend(context.Background(), who, dataScienceInput)
	require.NoError(t, err)
	assert.Empty(t, f.history.rows)
}

func TestRecommendNothingAboveThreshold(t *testing.T) {
	f := newAnalysisFixture()

	got, err := f.svc.Recommend(context.Background(), auth.Anonymous(), AnalysisInput{SkillIDs: []int64{42}, RiasecCodes: []string{"R"}, MbtiCode: "ESFP"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, f.runs.runs, 1)
}
