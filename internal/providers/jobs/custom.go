package jobs

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	CustomKey         = "custom"
	customPlaceholder = "custom://jobs-api"
)

var ErrCustomURL = errors.New("CUSTOM_JOBS_API_URL is required when JOBS_PROVIDER=custom")

type CustomOptions struct {
	URL         string
	Method      string // GET or POST
	Headers     map[string]string
	ResultsPath string // dotted path to the results array, ex: "data.items"
	SearchParam string
	LimitParam  string
}

// CustomProvider reads any JSON jobs API whose items can be described by
// customMapping.
type CustomProvider struct {
	opts   CustomOptions
	client *http.Client
}

func NewCustomProvider(opts CustomOptions, client *http.Client) *CustomProvider {
	opts.Method = strings.ToUpper(strings.TrimSpace(opts.Method))
	if opts.Method != http.MethodPost {
		opts.Method = http.MethodGet
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "search"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	return &CustomProvider{opts: opts, client: client}
}

func (p *CustomProvider) Key() string { return CustomKey }

func (p *CustomProvider) BaseURL() string {
	if p.opts.URL == "" {
		return customPlaceholder
	}
	return p.opts.URL
}

// field is a normalized posting attribute.
type field int

const (
	fieldExternalID field = iota
	fieldTitle
	fieldCompany
	fieldLocation
	fieldApplyURL
	fieldSourceURL
	fieldRemoteType
	fieldEmploymentType
	fieldSalaryMin
	fieldSalaryMax
	fieldCurrency
	fieldDescription
	fieldPostedAt
)

// fieldRule lists source keys in priority order; the first non-blank one wins.
type fieldRule struct {
	target   field
	sources  []string
	fallback string
}

var customMapping = []fieldRule{
	{target: fieldExternalID, sources: []string{"externalId", "external_id", "id", "job_id", "uuid"}},
	{target: fieldTitle, sources: []string{"title", "job_title", "position"}},
	{target: fieldCompany, sources: []string{"company", "company_name", "employer"}},
	{target: fieldLocation, sources: []string{"location", "candidate_required_location", "city", "country"}, fallback: "Remote"},
	{target: fieldApplyURL, sources: []string{"applyUrl", "apply_url", "url", "job_url", "application_url"}},
	{target: fieldSourceURL, sources: []string{"sourceUrl", "source_url", "url", "job_url"}},
	{target: fieldRemoteType, sources: []string{"remoteType", "remote_type"}, fallback: "remote"},
	{target: fieldEmploymentType, sources: []string{"employmentType", "employment_type", "job_type", "type"}},
	{target: fieldSalaryMin, sources: []string{"salaryMin", "salary_min", "min_salary"}},
	{target: fieldSalaryMax, sources: []string{"salaryMax", "salary_max", "max_salary"}},
	{target: fieldCurrency, sources: []string{"salaryCurrency", "salary_currency", "currency"}},
	{target: fieldDescription, sources: []string{"description", "summary", "snippet"}},
	{target: fieldPostedAt, sources: []string{"postedAt", "posted_at", "publication_date", "created_at", "date_posted"}},
}

func resolveFields(raw map[string]any) map[field]string {
	out := make(map[field]string, len(customMapping))
	for _, rule := range customMapping {
		val := rule.fallback
		for _, key := range rule.sources {
			s := stringify(raw[key])
			if strings.TrimSpace(s) != "" {
				val = s
				break
			}
		}
		if val != "" {
			out[rule.target] = val
		}
	}
	return out
}

func (p *CustomProvider) Fetch(ctx context.Context, q Query) ([]Posting, error) {
	if p.opts.URL == "" {
		return nil, ErrCustomURL
	}

	req, err := p.buildRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := doJSON(p.client, req, "Custom jobs", &payload); err != nil {
		return nil, err
	}

	list, ok := payload.([]any)
	if !ok {
		list, ok = valueAtPath(payload, p.opts.ResultsPath).([]any)
		if !ok {
			return nil, fmt.Errorf("custom jobs payload did not contain an array at CUSTOM_JOBS_RESULTS_PATH=%s", p.opts.ResultsPath)
		}
	}
	if q.Limit > 0 && len(list) > q.Limit {
		list = list[:q.Limit]
	}

	out := make([]Posting, 0, len(list))
	for i, item := range list {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if posting, ok := normalizeCustom(raw, i); ok {
			out = append(out, posting)
		}
	}
	return out, nil
}

func (p *CustomProvider) buildRequest(ctx context.Context, q Query) (*http.Request, error) {
	var (
		target = p.opts.URL
		body   io.Reader
	)

	if p.opts.Method == http.MethodGet {
		u, err := url.Parse(target)
		if err != nil {
			return nil, err
		}
		params := u.Query()
		if q.Search != "" {
			params.Set(p.opts.SearchParam, q.Search)
		}
		if q.Limit > 0 {
			params.Set(p.opts.LimitParam, strconv.Itoa(q.Limit))
		}
		u.RawQuery = params.Encode()
		target = u.String()
	} else {
		b, err := json.Marshal(map[string]any{
			p.opts.SearchParam: q.Search,
			p.opts.LimitParam:  q.Limit,
		})
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, p.opts.Method, target, body)
	if err != nil {
		return nil, err
	}
	for k, v := range p.opts.Headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// normalizeCustom maps one raw item. Items without an apply URL are skipped.
func normalizeCustom(raw map[string]any, index int) (Posting, bool) {
	f := resolveFields(raw)

	applyURL, ok := f[fieldApplyURL]
	if !ok {
		return Posting{}, false
	}
	sourceURL, ok := f[fieldSourceURL]
	if !ok {
		sourceURL = applyURL
	}

	externalID, ok := f[fieldExternalID]
	if !ok {
		externalID = syntheticID(orDefault(f[fieldTitle], "job"), orDefault(f[fieldCompany], "company"), index)
	}

	return Posting{
		ExternalID:     externalID,
		Title:          orDefault(f[fieldTitle], "Untitled role"),
		Company:        orDefault(f[fieldCompany], "Unknown company"),
		Location:       f[fieldLocation],
		RemoteType:     f[fieldRemoteType],
		EmploymentType: optional(f[fieldEmploymentType]),
		SalaryMin:      toNumber(f[fieldSalaryMin]),
		SalaryMax:      toNumber(f[fieldSalaryMax]),
		SalaryCurrency: optional(f[fieldCurrency]),
		ApplyURL:       applyURL,
		SourceURL:      sourceURL,
		Description:    plainText(f[fieldDescription]),
		PostedAt:       parseTime(f[fieldPostedAt]),
		RawPayload:     rawJSON(raw),
	}, true
}

// syntheticID is a stable id for items that carry none: the first 20 hex
// chars of sha1("title:company:index").
func syntheticID(title, company string, index int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%s:%d", title, company, index)))
	return hex.EncodeToString(sum[:])[:20]
}

func valueAtPath(v any, path string) any {
	if path == "" {
		return v
	}
	for _, seg := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return v
}
