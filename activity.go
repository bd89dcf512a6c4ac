package main

import (
	"math"
	"sort"
	"time"
)

// Confidence labels for the activity recommendation.
const (
	confidenceLow    = "low"
	confidenceMedium = "medium"
	confidenceHigh   = "high"
)

// exerciseDayMinutes is the threshold for counting a day as "exercised".
const exerciseDayMinutes = 20

// defaultActivityWindowDays is the sample window analyzed when the caller
// doesn't ask for a specific one.
const defaultActivityWindowDays = 14

// healthSample is one day's observed step count and exercise minutes.
// Pointer fields: a missing value is absent, not zero — a sample with
// neither field doesn't qualify for analysis at all.
type healthSample struct {
	Date            time.Time
	Steps           *int
	ExerciseMinutes *int
}

// activityAnalysis is analyzeActivityLevel's output. RecommendedLevel uses
// the same vocabulary as activityMultipliers.
type activityAnalysis struct {
	RecommendedLevel   string  `json:"recommended_level"`
	CurrentLevel       string  `json:"current_level,omitempty"`
	ShouldRecommend    bool    `json:"should_recommend"`
	AvgSteps           float64 `json:"avg_steps"`
	AvgExerciseMinutes float64 `json:"avg_exercise_minutes"`
	DaysWithExercise   int     `json:"days_with_exercise"`
	DaysAnalyzed       int     `json:"days_analyzed"`
	Confidence         string  `json:"confidence"`
}

// activityTiers is the classification ladder, checked top-down: the first
// tier whose step OR weekly-exercise-day threshold is met wins.
var activityTiers = []struct {
	level           string
	minSteps        float64
	minExerciseDays int
}{
	{"very_active", 12500, 6},
	{"active", 10000, 5},
	{"moderate", 7500, 3},
	{"light", 5000, 1},
}

// analyzeActivityLevel looks at the most recent windowDays of qualifying
// samples and recommends an activity level. Fewer than 3 qualifying samples
// means no opinion: the current level (or "light" when there is none) is
// echoed back with low confidence and shouldRecommend=false.
func analyzeActivityLevel(samples []healthSample, currentLevel string, windowDays int) activityAnalysis {
	if windowDays <= 0 {
		windowDays = defaultActivityWindowDays
	}

	qualifying := make([]healthSample, 0, len(samples))
	for _, s := range samples {
		if s.Steps != nil || s.ExerciseMinutes != nil {
			qualifying = append(qualifying, s)
		}
	}
	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].Date.After(qualifying[j].Date)
	})
	if len(qualifying) > windowDays {
		qualifying = qualifying[:windowDays]
	}

	if len(qualifying) < 3 {
		fallback := currentLevel
		if fallback == "" {
			fallback = "light"
		}
		return activityAnalysis{
			RecommendedLevel: fallback,
			CurrentLevel:     currentLevel,
			ShouldRecommend:  false,
			DaysAnalyzed:     len(qualifying),
			Confidence:       confidenceLow,
		}
	}

	var totalSteps, totalMinutes float64
	daysWithExercise := 0
	for _, s := range qualifying {
		if s.Steps != nil {
			totalSteps += float64(*s.Steps)
		}
		if s.ExerciseMinutes != nil {
			totalMinutes += float64(*s.ExerciseMinutes)
			if *s.ExerciseMinutes >= exerciseDayMinutes {
				daysWithExercise++
			}
		}
	}
	n := len(qualifying)
	avgSteps := totalSteps / float64(n)
	avgMinutes := totalMinutes / float64(n)

	// Extrapolate observed exercise days to a 7-day week estimate.
	weeklyExerciseDays := int(math.Round(float64(daysWithExercise) / float64(n) * 7))

	recommended := "sedentary"
	for _, tier := range activityTiers {
		if avgSteps >= tier.minSteps || weeklyExerciseDays >= tier.minExerciseDays {
			recommended = tier.level
			break
		}
	}

	confidence := confidenceLow
	switch {
	case n >= 10:
		confidence = confidenceHigh
	case n >= 5:
		confidence = confidenceMedium
	}

	return activityAnalysis{
		RecommendedLevel:   recommended,
		CurrentLevel:       currentLevel,
		ShouldRecommend:    recommended != currentLevel && confidence != confidenceLow,
		AvgSteps:           avgSteps,
		AvgExerciseMinutes: avgMinutes,
		DaysWithExercise:   daysWithExercise,
		DaysAnalyzed:       n,
		Confidence:         confidence,
	}
}
