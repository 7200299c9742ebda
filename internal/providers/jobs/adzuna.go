package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	AdzunaKey        = "adzuna"
	AdzunaBaseURL    = "https://api.adzuna.com/v1/api/jobs"
	adzunaMaxPerPage = 50
)

var ErrAdzunaCredentials = errors.New("ADZUNA_APP_ID and ADZUNA_API_KEY are required when JOBS_PROVIDER=adzuna")

type AdzunaOptions struct {
	AppID   string
	APIKey  string
	Country string // "us", "gb", ...
	Page    int
	BaseURL string
}

// AdzunaProvider reads one results page from the Adzuna search API.
type AdzunaProvider struct {
	opts   AdzunaOptions
	client *http.Client
}

func NewAdzunaProvider(opts AdzunaOptions, client *http.Client) *AdzunaProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = AdzunaBaseURL
	}
	if opts.Country == "" {
		opts.Country = "us"
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	return &AdzunaProvider{opts: opts, client: client}
}

func (p *AdzunaProvider) Key() string { return AdzunaKey }

// BaseURL is the public API root regardless of overrides used for testing.
func (p *AdzunaProvider) BaseURL() string { return AdzunaBaseURL }

// adzunaResult mirrors a single Adzuna job listing. Salaries stay raw since
// Adzuna sends them as numbers or numeric strings.
type adzunaResult struct {
	ID           any         `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Company      adzunaLabel `json:"company"`
	Location     adzunaLabel `json:"location"`
	SalaryMin    any         `json:"salary_min"`
	SalaryMax    any         `json:"salary_max"`
	RedirectURL  string      `json:"redirect_url"`
	Created      string      `json:"created"`
	ContractTime string      `json:"contract_time"`
	ContractType string      `json:"contract_type"`
}

type adzunaLabel struct {
	DisplayName string `json:"display_name"`
}

type adzunaResponse struct {
	Results []json.RawMessage `json:"results"`
}

func (p *AdzunaProvider) Fetch(ctx context.Context, q Query) ([]Posting, error) {
	if p.opts.AppID == "" || p.opts.APIKey == "" {
		return nil, ErrAdzunaCredentials
	}

	perPage := min(max(q.Limit, 1), adzunaMaxPerPage)

	endpoint := fmt.Sprintf("%s/%s/search/%d", strings.TrimRight(p.opts.BaseURL, "/"), p.opts.Country, p.opts.Page)
	params := url.Values{}
	params.Set("app_id", p.opts.AppID)
	params.Set("app_key", p.opts.APIKey)
	params.Set("results_per_page", strconv.Itoa(perPage))
	if q.Search != "" {
		params.Set("what", q.Search)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var payload adzunaResponse
	if err := doJSON(p.client, req, "Adzuna", &payload); err != nil {
		return nil, err
	}

	out := make([]Posting, 0, len(payload.Results))
	for _, raw := range payload.Results {
		var r adzunaResult
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if strings.TrimSpace(r.RedirectURL) == "" {
			continue
		}

		externalID := stringify(r.ID)
		if externalID == "" {
			externalID = r.Title + "-" + r.RedirectURL
		}
		employment := r.ContractTime
		if employment == "" {
			employment = r.ContractType
		}
		currency := "USD"

		out = append(out, Posting{
			ExternalID:     externalID,
			Title:          orDefault(r.Title, "Untitled role"),
			Company:        orDefault(r.Company.DisplayName, "Unknown company"),
			Location:       orDefault(r.Location.DisplayName, "Remote"),
			RemoteType:     "remote",
			EmploymentType: optional(employment),
			SalaryMin:      toNumber(r.SalaryMin),
			SalaryMax:      toNumber(r.SalaryMax),
			SalaryCurrency: &currency,
			ApplyURL:       r.RedirectURL,
			SourceURL:      r.RedirectURL,
			Description:    plainText(r.Description),
			PostedAt:       parseTime(r.Created),
			RawPayload:     raw,
		})
	}
	return out, nil
}
