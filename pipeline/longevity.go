// Copyright 2025 AI Payment Concierge
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// AnalyzeLongevity projects savings growth to the retirement age and
// classifies the trajectory against the configured shortfall thresholds.
// Pure function over the profile; no side effects.
func AnalyzeLongevity(profile types.UserProfile, t config.ThresholdConfig) LongevitySignal {
	net := profile.MonthlyIncome - profile.MonthlyExpenses
	years := profile.RetirementAge - profile.CurrentAge
	if years < 0 {
		years = 0
	}

	projected := profile.CurrentSavings + net*12*float64(years)

	shortfall := 0.0
	if profile.TargetSavings > 0 && projected < profile.TargetSavings {
		shortfall = (profile.TargetSavings - projected) / profile.TargetSavings
	}

	sig := LongevitySignal{
		MonthlyNet:        net,
		YearsToRetirement: years,
		ProjectedSavings:  projected,
		ShortfallFraction: shortfall,
	}

	switch {
	case net <= 0 && projected < profile.TargetSavings:
		// Savings are being burned, not grown: risky regardless of how
		// close the projection sits to the target.
		sig.Status = LongevityRisky
	case shortfall <= t.LongevityOnTrack:
		sig.Status = LongevityOnTrack
	case shortfall <= t.LongevityBorderline:
		sig.Status = LongevityBorderline
	default:
		sig.Status = LongevityRisky
	}
	return sig
}
