package main

import "math"

// BMR source labels, reported alongside the value so the UI can show which
// method produced the estimate.
const (
	bmrSourceInBody        = "inbody"
	bmrSourceKatchMcArdle  = "katch_mcardle"
	bmrSourceMifflinStJeor = "mifflin_st_jeor"
	bmrSourceNone          = "none"
)

// physiologicalProfile is the bag of optional measurements a BMR estimate can
// be derived from. All fields are pointers — absence is a first-class case,
// not an error.
type physiologicalProfile struct {
	InBodyBMR      *int
	LeanBodyMassKG *float64
	WeightKG       *float64
	HeightCM       *float64
	AgeYears       *int
	Gender         *string // male, female, other, prefer-not-to-say
}

// bmrResult pairs the estimated BMR with the method that produced it.
// Source is bmrSourceNone exactly when BMR is 0.
type bmrResult struct {
	BMR    int    `json:"bmr"`
	Source string `json:"source"`
}

// calculateBMRKatchMcArdle computes BMR from lean body mass alone.
// Gender-independent: lean mass already encodes sex differences.
func calculateBMRKatchMcArdle(leanBodyMassKG float64) int {
	return int(math.Round(370 + 21.6*leanBodyMassKG))
}

// calculateBMRMifflinStJeor computes BMR from weight, height, age and gender.
// The "other" and "prefer-not-to-say" offset (-78) is the midpoint of the
// male (+5) and female (-161) constants, so non-binary users are never mapped
// onto a guessed binary sex.
func calculateBMRMifflinStJeor(weightKG, heightCM float64, ageYears int, gender string) int {
	base := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	switch gender {
	case "male":
		base += 5
	case "female":
		base -= 161
	default:
		base -= 78
	}
	return int(math.Round(base))
}

// getBMRWithPriority picks the best available BMR estimate. Priority order:
// a measured InBody value beats a lean-mass formula, which beats the
// anthropometric formula. When nothing is usable it degrades to {0, none}
// rather than erroring.
func getBMRWithPriority(p physiologicalProfile) bmrResult {
	if p.InBodyBMR != nil && *p.InBodyBMR > 0 {
		return bmrResult{BMR: *p.InBodyBMR, Source: bmrSourceInBody}
	}
	if p.LeanBodyMassKG != nil && *p.LeanBodyMassKG > 0 {
		return bmrResult{BMR: calculateBMRKatchMcArdle(*p.LeanBodyMassKG), Source: bmrSourceKatchMcArdle}
	}
	if p.WeightKG != nil && *p.WeightKG > 0 &&
		p.HeightCM != nil && *p.HeightCM > 0 &&
		p.AgeYears != nil && *p.AgeYears > 0 &&
		p.Gender != nil {
		return bmrResult{
			BMR:    calculateBMRMifflinStJeor(*p.WeightKG, *p.HeightCM, *p.AgeYears, *p.Gender),
			Source: bmrSourceMifflinStJeor,
		}
	}
	return bmrResult{BMR: 0, Source: bmrSourceNone}
}

// canCalculateBMR reports whether any estimation path is satisfied and, when
// none is, which profile fields are still needed for the Mifflin-St Jeor
// fallback. The missing list drives the UI's "complete your profile" prompt,
// so field names are user-facing (date of birth, not age). It does not gate
// the lean-mass-only path — a user with only an InBody scan gets ok=true with
// nothing listed.
func canCalculateBMR(p physiologicalProfile) (ok bool, missing []string) {
	if p.InBodyBMR != nil && *p.InBodyBMR > 0 {
		return true, nil
	}
	if p.LeanBodyMassKG != nil && *p.LeanBodyMassKG > 0 {
		return true, nil
	}
	if p.WeightKG == nil || *p.WeightKG <= 0 {
		missing = append(missing, "weight")
	}
	if p.HeightCM == nil || *p.HeightCM <= 0 {
		missing = append(missing, "height")
	}
	if p.AgeYears == nil || *p.AgeYears <= 0 {
		missing = append(missing, "date of birth")
	}
	if p.Gender == nil {
		missing = append(missing, "gender")
	}
	return len(missing) == 0, missing
}
