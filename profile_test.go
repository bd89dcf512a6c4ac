package main

import (
	"testing"
	"time"
)

// TestAgeOnDate verifies the birthday-aware year arithmetic, including the
// day-before-birthday edge.
func TestAgeOnDate(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"day before birthday", time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), 35},
		{"on birthday", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 36},
		{"day after birthday", time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC), 36},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ageOnDate(dob, tc.today); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// TestPhysiologyFor_ScanFeedsCascade verifies the latest scan's measured BMR
// and lean mass end up at the top of the BMR priority cascade.
func TestPhysiologyFor_ScanFeedsCascade(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := userProfile{
		Gender:      strPtr("female"),
		DateOfBirth: &DateOnly{time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)},
		HeightCM:    floatPtr(165),
		WeightKG:    floatPtr(60),
	}
	scan := &bodyScan{MeasuredBMR: intPtr(1410), LeanBodyMassKG: floatPtr(44)}

	phys := physiologyFor(p, scan, today)
	got := getBMRWithPriority(phys)
	if got.BMR != 1410 || got.Source != bmrSourceInBody {
		t.Errorf("got %+v, want the scan's measured BMR with source inbody", got)
	}

	// Without a scan the same profile falls back to the formula.
	phys = physiologyFor(p, nil, today)
	got = getBMRWithPriority(phys)
	if got.Source != bmrSourceMifflinStJeor {
		t.Errorf("source = %s, want mifflin_st_jeor without a scan", got.Source)
	}
}

// TestPhysiologyFor_ImplausibleAge verifies a future or ancient DOB is
// dropped rather than fed to the formula.
func TestPhysiologyFor_ImplausibleAge(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		dob  time.Time
	}{
		{"future DOB", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"age over 130", time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := userProfile{
				Gender:      strPtr("male"),
				DateOfBirth: &DateOnly{tc.dob},
				HeightCM:    floatPtr(180),
				WeightKG:    floatPtr(80),
			}
			phys := physiologyFor(p, nil, today)
			if phys.AgeYears != nil {
				t.Errorf("AgeYears = %v, want nil for implausible DOB", *phys.AgeYears)
			}
		})
	}
}
