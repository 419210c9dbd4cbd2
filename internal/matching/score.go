// internal/matching/score.go
package matching

import (
	"fmt"

	"placement-matching/internal/models"
)

// Factor weights for the base score. Factors are evaluated independently and
// summed, never normalized; a full match plus the perfect bonus totals 105.
const (
	WeightQualification = 40
	WeightStream        = 30
	WeightYear          = 20
	WeightYearAdjacent  = 10
	WeightGPA           = 10
	PerfectMatchBonus   = 5

	// MaxBaseScore is the unclamped ceiling of ComputeMatchScore.
	MaxBaseScore = WeightQualification + WeightStream + WeightYear + WeightGPA + PerfectMatchBonus
)

// ComputeMatchScore scores how well a candidate profile fits an eligibility
// rule. It is deterministic and total: every input yields a score and one
// human-readable reason per evaluated factor, plus a fifth reason when the
// perfect-match bonus applies.
func ComputeMatchScore(profile models.CandidateProfile, elig models.JobEligibility) (int, []string) {
	score := 0
	reasons := make([]string, 0, 5)

	qualMatched := containsString(elig.Qualifications, profile.Qualification)
	if qualMatched {
		score += WeightQualification
		reasons = append(reasons, fmt.Sprintf("Qualification %q is accepted for this posting", profile.Qualification))
	} else {
		reasons = append(reasons, fmt.Sprintf("Qualification %q is not among the accepted qualifications %v", profile.Qualification, elig.Qualifications))
	}

	streamMatched := containsString(elig.Streams, profile.Stream)
	if streamMatched {
		score += WeightStream
		reasons = append(reasons, fmt.Sprintf("Stream %q is accepted for this posting", profile.Stream))
	} else {
		reasons = append(reasons, fmt.Sprintf("Stream %q is not among the accepted streams %v", profile.Stream, elig.Streams))
	}

	yearMatched := containsInt(elig.GraduationYears, profile.GraduationYear)
	switch {
	case yearMatched:
		score += WeightYear
		reasons = append(reasons, fmt.Sprintf("Graduation year %d matches the required batch", profile.GraduationYear))
	case withinOneYearOfEarliest(elig.GraduationYears, profile.GraduationYear):
		score += WeightYearAdjacent
		reasons = append(reasons, fmt.Sprintf("Graduation year %d is within one year of the earliest required batch", profile.GraduationYear))
	default:
		reasons = append(reasons, fmt.Sprintf("Graduation year %d does not match the required batches %v", profile.GraduationYear, elig.GraduationYears))
	}

	switch {
	case elig.MinGPA == nil:
		score += WeightGPA
		reasons = append(reasons, "No GPA floor set for this posting")
	case profile.GPA >= *elig.MinGPA:
		score += WeightGPA
		reasons = append(reasons, fmt.Sprintf("GPA %.2f meets the floor of %.2f", profile.GPA, *elig.MinGPA))
	default:
		reasons = append(reasons, fmt.Sprintf("GPA %.2f is below the floor of %.2f", profile.GPA, *elig.MinGPA))
	}

	if qualMatched && streamMatched && yearMatched {
		score += PerfectMatchBonus
		reasons = append(reasons, "Perfect match on qualification, stream and graduation year")
	}

	return score, reasons
}

// withinOneYearOfEarliest grants the partial year credit: the profile's
// graduation year is at most one year away from the earliest required year.
// An empty requirement set earns nothing.
func withinOneYearOfEarliest(required []int, year int) bool {
	if len(required) == 0 {
		return false
	}
	earliest := required[0]
	for _, y := range required[1:] {
		if y < earliest {
			earliest = y
		}
	}
	diff := year - earliest
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}
