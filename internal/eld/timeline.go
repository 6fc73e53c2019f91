package eld

// Slots is the number of hour boundaries on a daily log, 0:00 through 24:00.
// The last slot repeats the final hour's status so a stepped chart closes at midnight.
const Slots = 25

// Timeline is one simulated day of duty statuses indexed by hour boundary.
type Timeline [Slots]DutyStatus

// Ints returns the timeline as plain integers, the form charting clients consume.
func (t Timeline) Ints() []int {
	out := make([]int, Slots)
	for i, s := range t {
		out[i] = int(s)
	}
	return out
}

// Hours counts the hours spent in status over the 24 real hours (slot 24 excluded).
func (t Timeline) Hours(status DutyStatus) int {
	n := 0
	for _, s := range t[:Slots-1] {
		if s == status {
			n++
		}
	}
	return n
}

// Totals returns the hour count per status.
func (t Timeline) Totals() map[DutyStatus]int {
	out := make(map[DutyStatus]int, len(Statuses))
	for _, s := range Statuses {
		out[s] = t.Hours(s)
	}
	return out
}
