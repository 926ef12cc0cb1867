package scoring

import (
	"strings"
	"testing"

	"jobfit/internal/config"
	"jobfit/internal/types"
)

func boolPtr(b bool) *bool          { return &b }
func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }

func TestVisaConstraint(t *testing.T) {
	tests := []struct {
		name        string
		sponsorship *bool
		needed      bool
		strict      bool
		wantPassed  bool
		wantReasons int
	}{
		{"not needed", nil, false, true, true, 0},
		{"offered", boolPtr(true), true, true, true, 0},
		{"denied strict", boolPtr(false), true, true, false, 1},
		{"denied lenient", boolPtr(false), true, false, true, 1},
		{"silent treated conservatively strict", nil, true, true, false, 1},
		{"silent treated conservatively lenient", nil, true, false, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultScoringConfig()
			cfg.VisaStrict = tt.strict
			job := &types.JobDescription{VisaSponsorship: tt.sponsorship}
			profile := &types.UserProfile{VisaSponsorshipNeeded: tt.needed}

			result := EvaluateConstraints(job, profile, &cfg)
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if len(result.Reasons) != tt.wantReasons {
				t.Errorf("Reasons = %v, want %d entries", result.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestLocationConstraint(t *testing.T) {
	tests := []struct {
		name        string
		jobWorkType types.WorkType
		preferences []types.WorkType
		strict      bool
		wantPassed  bool
		wantReasons int
	}{
		{"preferred work type", types.WorkTypeRemote, []types.WorkType{types.WorkTypeRemote}, true, true, 0},
		{"mismatch strict", types.WorkTypeOnsite, []types.WorkType{types.WorkTypeRemote}, true, false, 1},
		{"mismatch lenient", types.WorkTypeOnsite, []types.WorkType{types.WorkTypeRemote}, false, true, 1},
		{"job silent", "", []types.WorkType{types.WorkTypeRemote}, true, true, 0},
		{"default preferences accept anything", types.WorkTypeOnsite, nil, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultScoringConfig()
			cfg.LocationStrict = tt.strict
			job := &types.JobDescription{WorkType: tt.jobWorkType}
			profile := &types.UserProfile{WorkTypePreferences: tt.preferences}

			result := EvaluateConstraints(job, profile, &cfg)
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if len(result.Reasons) != tt.wantReasons {
				t.Errorf("Reasons = %v, want %d entries", result.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestSalaryConstraint(t *testing.T) {
	tests := []struct {
		name                 string
		jobMin, jobMax       *float64
		profMin, profPref    *float64
		strict               bool
		wantPassed           bool
		wantReasons          int
	}{
		{"overlapping ranges", floatPtr(90000), floatPtr(130000), floatPtr(100000), floatPtr(150000), true, true, 0},
		{"job pays below floor strict", floatPtr(50000), floatPtr(80000), floatPtr(100000), floatPtr(150000), true, false, 1},
		{"job pays below floor lenient", floatPtr(50000), floatPtr(80000), floatPtr(100000), floatPtr(150000), false, true, 1},
		{"job above preferred ceiling", floatPtr(200000), floatPtr(250000), floatPtr(100000), floatPtr(150000), true, false, 1},
		{"job silent on salary", nil, nil, floatPtr(100000), floatPtr(150000), true, true, 0},
		{"profile silent on salary", floatPtr(50000), floatPtr(80000), nil, nil, true, true, 0},
		{"only floor present and met", floatPtr(90000), floatPtr(130000), floatPtr(100000), nil, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultScoringConfig()
			cfg.SalaryStrict = tt.strict
			job := &types.JobDescription{SalaryMin: tt.jobMin, SalaryMax: tt.jobMax}
			profile := &types.UserProfile{MinSalary: tt.profMin, PreferredSalary: tt.profPref}

			result := EvaluateConstraints(job, profile, &cfg)
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if len(result.Reasons) != tt.wantReasons {
				t.Errorf("Reasons = %v, want %d entries", result.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestAllLenientNeverFailsGate(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.VisaStrict = false
	cfg.LocationStrict = false
	cfg.SalaryStrict = false

	// A job that mismatches every check.
	job := &types.JobDescription{
		WorkType:        types.WorkTypeOnsite,
		SalaryMin:       floatPtr(40000),
		SalaryMax:       floatPtr(50000),
		VisaSponsorship: boolPtr(false),
	}
	profile := &types.UserProfile{
		WorkTypePreferences:   []types.WorkType{types.WorkTypeRemote},
		VisaSponsorshipNeeded: true,
		MinSalary:             floatPtr(100000),
		PreferredSalary:       floatPtr(150000),
	}

	result := EvaluateConstraints(job, profile, &cfg)
	if !result.Passed {
		t.Error("gate failed with all strict flags disabled")
	}
	if len(result.Reasons) != 3 {
		t.Errorf("Reasons = %v, want 3 warning entries", result.Reasons)
	}
	for _, reason := range result.Reasons {
		if !strings.HasPrefix(reason, "warning: ") {
			t.Errorf("lenient reason %q lacks warning prefix", reason)
		}
	}
}

func TestStrictFailureListsOnlyFailedChecks(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.VisaStrict = true

	job := &types.JobDescription{VisaSponsorship: boolPtr(false)}
	profile := &types.UserProfile{VisaSponsorshipNeeded: true}

	result := EvaluateConstraints(job, profile, &cfg)
	if result.Passed {
		t.Error("strict visa mismatch did not fail the gate")
	}
	if len(result.Reasons) != 1 {
		t.Errorf("Reasons = %v, want exactly the visa reason", result.Reasons)
	}
}
