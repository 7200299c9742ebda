package jobs

import (
	"context"
	"net/http"
	"net/url"
)

const (
	RemotiveKey     = "remotive"
	RemotiveBaseURL = "https://remotive.com/api/remote-jobs"
)

type RemotiveProvider struct {
	baseURL string
	client  *http.Client
}

func NewRemotiveProvider(baseURL string, client *http.Client) *RemotiveProvider {
	if baseURL == "" {
		baseURL = RemotiveBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	return &RemotiveProvider{baseURL: baseURL, client: client}
}

func (p *RemotiveProvider) Key() string     { return RemotiveKey }
func (p *RemotiveProvider) BaseURL() string { return p.baseURL }

type remotiveResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

func (p *RemotiveProvider) Fetch(ctx context.Context, q Query) ([]Posting, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, err
	}
	if q.Search != "" {
		params := u.Query()
		params.Set("search", q.Search)
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	var payload remotiveResponse
	if err := doJSON(p.client, req, "Remotive", &payload); err != nil {
		return nil, err
	}

	items := payload.Jobs
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	out := make([]Posting, 0, len(items))
	for _, job := range items {
		link := stringify(job["url"])
		out = append(out, Posting{
			ExternalID:     stringify(job["id"]),
			Title:          orDefault(stringify(job["title"]), "Untitled role"),
			Company:        orDefault(stringify(job["company_name"]), "Unknown company"),
			Location:       orDefault(stringify(job["candidate_required_location"]), "Remote"),
			RemoteType:     "remote",
			EmploymentType: optional(stringify(job["job_type"])),
			ApplyURL:       link,
			SourceURL:      link,
			Description:    plainText(stringify(job["description"])),
			PostedAt:       parseTime(stringify(job["publication_date"])),
			RawPayload:     rawJSON(job),
		})
	}
	return out, nil
}
