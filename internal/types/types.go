package types

// WorkType describes where a role is performed.
type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeHybrid WorkType = "hybrid"
	WorkTypeOnsite WorkType = "onsite"
)

// Recommendation is the terminal verdict for a job evaluation.
type Recommendation string

const (
	RecommendationApply  Recommendation = "apply"
	RecommendationReview Recommendation = "review"
	RecommendationSkip   Recommendation = "skip"
)

// JobDescription is a fully populated structured job posting. It arrives
// from an upstream extractor and is read-only here.
type JobDescription struct {
	Company             string   `json:"company"`
	Title               string   `json:"title"`
	URL                 string   `json:"url,omitempty"`
	RequiredSkills      []string `json:"requiredSkills"`
	PreferredSkills     []string `json:"preferredSkills,omitempty"`
	ExperienceYearsMin  *int     `json:"experienceYearsMin,omitempty"`
	ExperienceYearsMax  *int     `json:"experienceYearsMax,omitempty"`
	Education           string   `json:"education,omitempty"`
	WorkType            WorkType `json:"workType,omitempty"`
	SalaryMin           *float64 `json:"salaryMin,omitempty"`
	SalaryMax           *float64 `json:"salaryMax,omitempty"`
	SalaryCurrency      string   `json:"salaryCurrency,omitempty"`
	VisaSponsorship     *bool    `json:"visaSponsorship,omitempty"`
}

// Education is one entry in a candidate's education history.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// UserProfile is the candidate side of an evaluation.
type UserProfile struct {
	Name                  string      `json:"name,omitempty"`
	Email                 string      `json:"email,omitempty"`
	Skills                []string    `json:"skills"`
	YearsOfExperience     int         `json:"yearsOfExperience"`
	Education             []Education `json:"education,omitempty"`
	WorkTypePreferences   []WorkType  `json:"workTypePreferences,omitempty"`
	TargetLocations       []string    `json:"targetLocations,omitempty"`
	VisaSponsorshipNeeded bool        `json:"visaSponsorshipNeeded"`
	MinSalary             *float64    `json:"minSalary,omitempty"`
	PreferredSalary       *float64    `json:"preferredSalary,omitempty"`
	SalaryCurrency        string      `json:"salaryCurrency,omitempty"`
}

// DefaultWorkTypePreferences returns the profile's work type preferences,
// defaulting to all work types when none are set.
func (p *UserProfile) DefaultWorkTypePreferences() []WorkType {
	if len(p.WorkTypePreferences) > 0 {
		return p.WorkTypePreferences
	}
	return []WorkType{WorkTypeRemote, WorkTypeHybrid, WorkTypeOnsite}
}

// ConstraintResult reports the hard-constraint gate outcome. Reasons hold
// one entry per failed or warned check, in evaluation order.
type ConstraintResult struct {
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons"`
}

// FitScore holds the four deterministic sub-scores and their weighted total,
// all in [0,1].
type FitScore struct {
	RequiredSkillScore  float64 `json:"requiredSkillScore"`
	PreferredSkillScore float64 `json:"preferredSkillScore"`
	ExperienceScore     float64 `json:"experienceScore"`
	EducationScore      float64 `json:"educationScore"`
	TotalScore          float64 `json:"totalScore"`
}

// FitResult is the terminal output of an evaluation.
type FitResult struct {
	Job            string           `json:"job,omitempty"`
	Company        string           `json:"company,omitempty"`
	FitScore       FitScore         `json:"fitScore"`
	Constraints    ConstraintResult `json:"constraints"`
	Recommendation Recommendation   `json:"recommendation"`
	Reasoning      string           `json:"reasoning,omitempty"`
}

// LLMFitEvaluation is the structured counterpart produced by the LLM
// scoring path. It is parsed from the model response, not computed.
type LLMFitEvaluation struct {
	TotalScore     float64        `json:"totalScore"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}

// Valid reports whether the recommendation is one of the known labels.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationApply, RecommendationReview, RecommendationSkip:
		return true
	}
	return false
}
