package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdzunaRequiresCredentials(t *testing.T) {
	p := NewAdzunaProvider(AdzunaOptions{AppID: "id"}, nil)
	_, err := p.Fetch(context.Background(), Query{Limit: 10})
	assert.ErrorIs(t, err, ErrAdzunaCredentials)
}

func TestAdzunaFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gb/search/2", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "id", q.Get("app_id"))
		assert.Equal(t, "key", q.Get("app_key"))
		assert.Equal(t, "50", q.Get("results_per_page"))
		assert.Equal(t, "data", q.Get("what"))

		_, _ = w.Write([]byte(`{"results":[
			{"id":"4821","title":"Data Analyst","company":{"display_name":"Acme"},
			 "location":{"display_name":"London"},"salary_min":40000,"salary_max":"55000",
			 "redirect_url":"https://adzuna.test/r/4821","created":"2024-03-02T10:00:00Z",
			 "contract_type":"permanent","description":"Crunch numbers"},
			{"id":"4822","title":"No Redirect"},
			{"title":"","redirect_url":"https://adzuna.test/r/x"}
		]}`))
	}))
	defer srv.Close()

	p := NewAdzunaProvider(AdzunaOptions{AppID: "id", APIKey: "key", Country: "gb", Page: 2, BaseURL: srv.URL}, srv.Client())
	got, err := p.Fetch(context.Background(), Query{Limit: 120, Search: "data"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "4821", first.ExternalID)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "London", first.Location)
	require.NotNil(t, first.EmploymentType)
	assert.Equal(t, "permanent", *first.EmploymentType)
	assert.Equal(t, 40000.0, *first.SalaryMin)
	assert.Equal(t, 55000.0, *first.SalaryMax)
	assert.Equal(t, "USD", *first.SalaryCurrency)
	require.NotNil(t, first.PostedAt)

	second := got[1]
	assert.Equal(t, "-https://adzuna.test/r/x", second.ExternalID)
	assert.Equal(t, "Untitled role", second.Title)
	assert.Equal(t, "Unknown company", second.Company)
	assert.Equal(t, "Remote", second.Location)
	assert.Nil(t, second.SalaryMin)
}

func TestAdzunaClampsPageSize(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query().Get("results_per_page")
		assert.False(t, r.URL.Query().Has("what"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	p := NewAdzunaProvider(AdzunaOptions{AppID: "id", APIKey: "key", BaseURL: srv.URL}, srv.Client())
	_, err := p.Fetch(context.Background(), Query{Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, "1", seen)
	assert.Equal(t, AdzunaBaseURL, p.BaseURL())
}
