package scoring

import (
	"fmt"
	"slices"

	"jobfit/internal/config"
	"jobfit/internal/types"
)

// EvaluateConstraints inspects profile preferences against job facts and
// returns the hard-constraint gate outcome. Each check is evaluated
// independently and gated by its own strict flag: a strict mismatch fails
// the gate, a non-strict mismatch is recorded as a warning reason only.
// Missing optional data downgrades a check to a silent skip, never an error.
func EvaluateConstraints(job *types.JobDescription, profile *types.UserProfile, cfg *config.ScoringConfig) types.ConstraintResult {
	result := types.ConstraintResult{
		Passed:  true,
		Reasons: []string{},
	}

	checkVisa(job, profile, cfg, &result)
	checkLocation(job, profile, cfg, &result)
	checkSalary(job, profile, cfg, &result)

	return result
}

// checkVisa flags jobs that offer no sponsorship (or are silent on it) when
// the candidate needs sponsorship.
func checkVisa(job *types.JobDescription, profile *types.UserProfile, cfg *config.ScoringConfig, result *types.ConstraintResult) {
	if !profile.VisaSponsorshipNeeded {
		return
	}

	// A job silent on sponsorship is treated conservatively as not offering it.
	if job.VisaSponsorship != nil && *job.VisaSponsorship {
		return
	}

	reason := "visa sponsorship needed but not offered by this job"
	if cfg.VisaStrict {
		result.Passed = false
		result.Reasons = append(result.Reasons, reason)
	} else {
		result.Reasons = append(result.Reasons, "warning: "+reason)
	}
}

// checkLocation flags jobs whose work type is outside the candidate's
// preferences.
func checkLocation(job *types.JobDescription, profile *types.UserProfile, cfg *config.ScoringConfig, result *types.ConstraintResult) {
	if job.WorkType == "" {
		return
	}

	if slices.Contains(profile.DefaultWorkTypePreferences(), job.WorkType) {
		return
	}

	reason := fmt.Sprintf("work type %q is not among the candidate's preferences", job.WorkType)
	if cfg.LocationStrict {
		result.Passed = false
		result.Reasons = append(result.Reasons, reason)
	} else {
		result.Reasons = append(result.Reasons, "warning: "+reason)
	}
}

// checkSalary flags jobs whose offered range does not overlap the
// candidate's expected range. Absent bounds on either side mean the check
// cannot be determined and it is skipped.
func checkSalary(job *types.JobDescription, profile *types.UserProfile, cfg *config.ScoringConfig, result *types.ConstraintResult) {
	if job.SalaryMin == nil && job.SalaryMax == nil {
		return
	}
	if profile.MinSalary == nil && profile.PreferredSalary == nil {
		return
	}

	if salaryRangesOverlap(job, profile) {
		return
	}

	reason := "offered salary range does not overlap the candidate's expectations"
	if cfg.SalaryStrict {
		result.Passed = false
		result.Reasons = append(result.Reasons, reason)
	} else {
		result.Reasons = append(result.Reasons, "warning: "+reason)
	}
}

// salaryRangesOverlap reports whether the job's offered range intersects
// [profile.MinSalary, profile.PreferredSalary]. A missing bound is
// unbounded on that side.
func salaryRangesOverlap(job *types.JobDescription, profile *types.UserProfile) bool {
	// Job's offered range is below the candidate's floor.
	if profile.MinSalary != nil && job.SalaryMax != nil && *job.SalaryMax < *profile.MinSalary {
		return false
	}
	// Job's floor is above the candidate's ceiling.
	if profile.PreferredSalary != nil && job.SalaryMin != nil && *job.SalaryMin > *profile.PreferredSalary {
		return false
	}
	return true
}
