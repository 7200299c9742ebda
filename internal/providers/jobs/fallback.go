package jobs

import (
	"encoding/json"
	"time"
)

// Fallback is the static list stored when a provider fetch fails, so the
// jobs feed is never left empty.
func Fallback(now time.Time) []Posting {
	posted := now.UTC()
	currency := "USD"
	fullTime := "full_time"
	contract := "contract"
	raw := json.RawMessage(`{"fallback":true}`)

	analystURL := "https://www.linkedin.com/jobs/search/?keywords=Product%20Analyst"
	designerURL := "https://www.linkedin.com/jobs/search/?keywords=UX%20Designer"

	return []Posting{
		{
			ExternalID:     "fallback-1",
			Title:          "Junior Product Analyst",
			Company:        "Compass Labs",
			Location:       "Remote - Global",
			RemoteType:     "remote",
			EmploymentType: &fullTime,
			SalaryMin:      ptrFloat(65000),
			SalaryMax:      ptrFloat(82000),
			SalaryCurrency: &currency,
			ApplyURL:       analystURL,
			SourceURL:      analystURL,
			Description:    "Analyze product usage data and support cross-functional planning.",
			PostedAt:       &posted,
			RawPayload:     raw,
		},
		{
			ExternalID:     "fallback-2",
			Title:          "Remote UX Designer",
			Company:        "North Pixel",
			Location:       "Remote - Europe",
			RemoteType:     "remote",
			EmploymentType: &contract,
			SalaryMin:      ptrFloat(70000),
			SalaryMax:      ptrFloat(90000),
			SalaryCurrency: &currency,
			ApplyURL:       designerURL,
			SourceURL:      designerURL,
			Description:    "Design user journeys, wireframes, and high-fidelity interfaces.",
			PostedAt:       &posted,
			RawPayload:     raw,
		},
	}
}

func ptrFloat(f float64) *float64 { return &f }
