package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotiveFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "product", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"jobs":[
			{"id":1911,"title":"Product Analyst","company_name":"Remote Co","candidate_required_location":"Worldwide",
			 "job_type":"full_time","url":"https://remotive.test/1911","publication_date":"2024-06-01T08:30:00",
			 "description":"<div>Own <em>metrics</em></div><ul><li>SQL</li><li>Python</li></ul>"},
			{"id":1912,"title":"Second","url":"https://remotive.test/1912"},
			{"id":1913,"title":"Third","url":"https://remotive.test/1913"}
		]}`))
	}))
	defer srv.Close()

	p := NewRemotiveProvider(srv.URL, srv.Client())
	got, err := p.Fetch(context.Background(), Query{Limit: 2, Search: "product"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	j := got[0]
	assert.Equal(t, "1911", j.ExternalID)
	assert.Equal(t, "Worldwide", j.Location)
	assert.Equal(t, "https://remotive.test/1911", j.ApplyURL)
	assert.Equal(t, "Own metrics SQL Python", j.Description)
	require.NotNil(t, j.PostedAt)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), *j.PostedAt)
	assert.Nil(t, j.SalaryMin)

	assert.Equal(t, "Unknown company", got[1].Company)
	assert.Equal(t, "Remote", got[1].Location)
	assert.Nil(t, got[1].EmploymentType)
}

func TestRemotiveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemotiveProvider(srv.URL, srv.Client()).Fetch(context.Background(), Query{Limit: 5})
	require.Error(t, err)
	assert.Equal(t, "Remotive API responded with 503", err.Error())
}

func TestFallback(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := Fallback(now)
	require.Len(t, got, 2)

	assert.Equal(t, "fallback-1", got[0].ExternalID)
	assert.Equal(t, "Junior Product Analyst", got[0].Title)
	assert.Equal(t, "fallback-2", got[1].ExternalID)
	assert.Equal(t, "Remote UX Designer", got[1].Title)
	assert.Equal(t, now, *got[1].PostedAt)
	assert.JSONEq(t, `{"fallback":true}`, string(got[0].RawPayload))
}
