package scoring

// RequiredSkill is one skill a career asks for, weighted by importance.
type RequiredSkill struct {
	SkillID    int64
	Name       string
	Category   string
	Importance float64
	MinLevel   string
}

type TraitWeight struct {
	Code   string
	Weight float64
}

type Certification struct {
	CertificationID int64   `json:"certificationId"`
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	IsRequired      bool    `json:"isRequired"`
	Notes           *string `json:"notes"`
}

// CareerProfile is the read-only view of a catalog career the engine scores.
type CareerProfile struct {
	ID              int64
	Slug            string
	Title           string
	Description     string
	ExperienceLevel string
	MedianSalaryUSD *int64

	RequiredSkills []RequiredSkill
	Riasec         []TraitWeight
	Mbti           []TraitWeight
	Certifications []Certification
}

// Selection is what a user picked. Build it with NewSelection.
type Selection struct {
	skillIDs map[int64]struct{}
	riasec   map[string]struct{}
	mbti     string
}

func NewSelection(skillIDs []int64, riasecCodes []string, mbtiCode string) Selection {
	s := Selection{
		skillIDs: make(map[int64]struct{}, len(skillIDs)),
		riasec:   make(map[string]struct{}, len(riasecCodes)),
		mbti:     mbtiCode,
	}
	for _, id := range skillIDs {
		s.skillIDs[id] = struct{}{}
	}
	for _, c := range riasecCodes {
		s.riasec[c] = struct{}{}
	}
	return s
}

func (s Selection) HasSkill(id int64) bool {
	_, ok := s.skillIDs[id]
	return ok
}

func (s Selection) HasRiasec(code string) bool {
	_, ok := s.riasec[code]
	return ok
}

func (s Selection) Mbti() string { return s.mbti }

type Breakdown struct {
	SkillCoverage  float64 `json:"skillCoverage"`
	RiasecCoverage float64 `json:"riasecCoverage"`
	MbtiAlignment  float64 `json:"mbtiAlignment"`
}

type Matched struct {
	Skills []string `json:"skills"`
	Riasec []string `json:"riasec"`
	Mbti   *string  `json:"mbti"`
}

type SkillGap struct {
	SkillID          int64   `json:"skillId"`
	SkillName        string  `json:"skillName"`
	Importance       float64 `json:"importance"`
	RecommendedLevel string  `json:"recommendedLevel"`
}

// ScoredCareer is the engine's output for one career.
type ScoredCareer struct {
	CareerID        int64           `json:"careerId"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ExperienceLevel string          `json:"experienceLevel"`
	MedianSalaryUSD *int64          `json:"medianSalaryUsd"`
	Score           int             `json:"score"`
	Breakdown       Breakdown       `json:"breakdown"`
	Matched         Matched         `json:"matched"`
	SkillGaps       []SkillGap      `json:"skillGaps"`
	Certifications  []Certification `json:"certifications"`
}
