package eld

import "math"

const (
	milesPerHour      = 100
	maxDrivingHours   = 11
	restHours         = 10
	fuelIntervalMiles = 1000
	hoursPerDay       = 24
)

// Synthesize fills one day of duty statuses from the trip mileage.
//
// The day is built from repeating blocks: up to 11 hours of driving at a fixed
// 100 mph, an optional fuel stop when the miles driven land exactly on a
// 1000-mile mark, one hour for pickup/drop-off, then 10 hours off duty. Blocks
// repeat until the mileage is covered or the day is full.
//
// cycleHours does not change the result; every daily panel of a trip is
// synthesized from the same inputs. Callers must pass sanitized values.
func Synthesize(totalMiles, cycleHours float64) Timeline {
	var t Timeline // zero value is all OffDuty

	milesDriven := 0
	hour := 0

	for float64(milesDriven) < totalMiles && hour < hoursPerDay {
		for i := 0; i < maxDrivingHours && float64(milesDriven) < totalMiles && hour < hoursPerDay; i++ {
			t[hour] = Driving
			milesDriven += milesPerHour
			hour++
		}

		// Exact lattice check: miles only move in 100-mile steps.
		if milesDriven%fuelIntervalMiles == 0 && hour < hoursPerDay {
			t[hour] = OnDuty
			hour++
		}

		if hour < hoursPerDay {
			t[hour] = OnDuty
			hour++
		}

		for i := 0; i < restHours && hour < hoursPerDay; i++ {
			t[hour] = OffDuty
			hour++
		}
	}

	return t
}

// MaxCycleHours bounds the cycles callers accept. PanelCount clamps above it.
const MaxCycleHours = 10000

// PanelCount is the number of daily-log panels for a duty cycle: ceil(cycleHours/24), never negative.
// Cycles longer than MaxCycleHours count as MaxCycleHours.
func PanelCount(cycleHours float64) int {
	if !(cycleHours > 0) || math.IsInf(cycleHours, 1) {
		return 0
	}
	return int(math.Ceil(min(cycleHours, MaxCycleHours) / hoursPerDay))
}

// Sanitize maps NaN, infinities and negative values to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
