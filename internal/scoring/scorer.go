package scoring

import (
	"strings"

	"jobfit/internal/config"
	"jobfit/internal/types"
)

// degreeRanks orders common degree levels for education comparisons.
var degreeRanks = []struct {
	keywords []string
	rank     int
}{
	{[]string{"phd", "ph.d", "doctorate", "doctoral"}, 5},
	{[]string{"master", "msc", "m.s", "mba", "meng"}, 4},
	{[]string{"bachelor", "bsc", "b.s", "beng", "undergraduate"}, 3},
	{[]string{"associate"}, 2},
	{[]string{"high school", "secondary", "ged", "diploma"}, 1},
}

// DeterministicScorer computes the four sub-scores and their weighted
// total. It is a pure function over (job, profile, config): no I/O, no
// shared state, identical inputs always yield bit-identical outputs, so it
// is safe to invoke concurrently across evaluations.
type DeterministicScorer struct {
	cfg *config.ScoringConfig
}

// NewDeterministicScorer creates a scorer over an already-validated
// scoring configuration.
func NewDeterministicScorer(cfg *config.ScoringConfig) *DeterministicScorer {
	return &DeterministicScorer{cfg: cfg}
}

// Score combines the sub-scores via the configured weights. The weights are
// taken verbatim from config (validated to sum to 1.0 at construction), so
// the total is guaranteed in [0,1].
func (s *DeterministicScorer) Score(job *types.JobDescription, profile *types.UserProfile) types.FitScore {
	score := types.FitScore{
		RequiredSkillScore:  s.skillCoverage(job.RequiredSkills, profile.Skills),
		PreferredSkillScore: s.skillCoverage(job.PreferredSkills, profile.Skills),
		ExperienceScore:     s.experienceScore(job, profile),
		EducationScore:      s.educationScore(job, profile),
	}

	w := s.cfg.Weights
	score.TotalScore = w.MustHave*score.RequiredSkillScore +
		w.Preferred*score.PreferredSkillScore +
		w.Experience*score.ExperienceScore +
		w.Education*score.EducationScore

	return score
}

// skillCoverage returns the fraction of wanted skills satisfied by the
// profile. An empty requirement set is vacuously satisfied: absence of a
// requirement cannot penalize a candidate.
func (s *DeterministicScorer) skillCoverage(wanted, held []string) float64 {
	if len(wanted) == 0 {
		return 1.0
	}

	matched := 0
	for _, want := range wanted {
		if s.skillSatisfied(want, held) {
			matched++
		}
	}

	return float64(matched) / float64(len(wanted))
}

// skillSatisfied reports whether any held skill matches the wanted skill,
// exactly (case-insensitive) or fuzzily when enabled.
func (s *DeterministicScorer) skillSatisfied(want string, held []string) bool {
	for _, have := range held {
		if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
			return true
		}
		if s.cfg.SkillFuzzyMatch && Similarity(want, have) >= s.cfg.SkillFuzzyThreshold {
			return true
		}
	}
	return false
}

// experienceScore is 1.0 inside the job's experience window (absent bounds
// are unbounded), 1.0 for gaps within the configured tolerance, and decays
// monotonically toward 0.0 beyond it.
func (s *DeterministicScorer) experienceScore(job *types.JobDescription, profile *types.UserProfile) float64 {
	if job.ExperienceYearsMin == nil && job.ExperienceYearsMax == nil {
		return 1.0
	}

	years := profile.YearsOfExperience

	gap := 0
	if job.ExperienceYearsMin != nil && years < *job.ExperienceYearsMin {
		gap = *job.ExperienceYearsMin - years
	} else if job.ExperienceYearsMax != nil && years > *job.ExperienceYearsMax {
		gap = years - *job.ExperienceYearsMax
	}

	if gap <= s.cfg.ExperienceToleranceYears {
		return 1.0
	}

	excess := gap - s.cfg.ExperienceToleranceYears
	return 1.0 / (1.0 + float64(excess))
}

// educationScore is 1.0 when the job states no requirement or any profile
// degree meets it; otherwise partial credit proportional to how close the
// candidate's best degree level is to the required one.
func (s *DeterministicScorer) educationScore(job *types.JobDescription, profile *types.UserProfile) float64 {
	required := degreeRank(job.Education)
	if required == 0 {
		return 1.0
	}

	best := 0
	for _, edu := range profile.Education {
		if rank := degreeRank(edu.Degree); rank > best {
			best = rank
		}
	}

	if best >= required {
		return 1.0
	}

	return float64(best) / float64(required)
}

// degreeRank maps a free-form degree description onto the ordinal ranking.
// Unknown descriptions rank 0 (no recognizable requirement).
func degreeRank(degree string) int {
	normalized := strings.ToLower(degree)
	if normalized == "" {
		return 0
	}
	for _, level := range degreeRanks {
		for _, kw := range level.keywords {
			if strings.Contains(normalized, kw) {
				return level.rank
			}
		}
	}
	return 0
}
