// Package jobs fetches postings from external job boards and normalizes
// them into Posting values.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/careercompass/api/config"
)

const httpTimeout = 15 * time.Second

// Posting is a provider-neutral job posting, ready to be stored.
type Posting struct {
	ExternalID     string
	Title          string
	Company        string
	Location       string
	RemoteType     string
	EmploymentType *string
	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency *string
	ApplyURL       string
	SourceURL      string
	Description    string
	PostedAt       *time.Time
	RawPayload     json.RawMessage
}

type Query struct {
	Limit  int
	Search string
}

type Provider interface {
	// Key is the job_sources.source_key this provider writes under.
	Key() string
	BaseURL() string
	Fetch(ctx context.Context, q Query) ([]Posting, error)
}

// FromConfig picks the provider named by JOBS_PROVIDER.
func FromConfig(cfg *config.Config, client *http.Client) Provider {
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	switch cfg.Jobs.Provider {
	case config.ProviderAdzuna:
		return NewAdzunaProvider(AdzunaOptions{
			AppID:   cfg.Adzuna.AppID,
			APIKey:  cfg.Adzuna.APIKey,
			Country: cfg.Adzuna.Country,
			Page:    cfg.Adzuna.Page,
			BaseURL: cfg.Adzuna.BaseURL,
		}, client)
	case config.ProviderCustom:
		return NewCustomProvider(CustomOptions{
			URL:         cfg.Custom.URL,
			Method:      cfg.Custom.Method,
			Headers:     cfg.Custom.Headers(),
			ResultsPath: cfg.Custom.ResultsPath,
			SearchParam: cfg.Custom.SearchParam,
			LimitParam:  cfg.Custom.LimitParam,
		}, client)
	default:
		return NewRemotiveProvider(cfg.Jobs.RemotiveURL, client)
	}
}

// doJSON runs req and decodes a 200 response into dst. Numbers decode as
// json.Number when dst is an interface.
func doJSON(client *http.Client, req *http.Request, label string, dst any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s API responded with %d", label, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%s decode: %w", label, err)
	}
	return nil
}
