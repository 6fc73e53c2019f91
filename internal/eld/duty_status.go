package eld

import "fmt"

// DutyStatus is one row of a driver's daily log grid.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDuty
)

var statusLabels = [...]string{
	OffDuty:      "Off-Duty",
	SleeperBerth: "Sleeper Berth",
	Driving:      "Driving",
	OnDuty:       "On-Duty (not driving)",
}

// Statuses lists every duty status in grid order.
var Statuses = []DutyStatus{OffDuty, SleeperBerth, Driving, OnDuty}

func (s DutyStatus) Valid() bool { return s >= OffDuty && s <= OnDuty }

func (s DutyStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("DutyStatus(%d)", int(s))
	}
	return statusLabels[s]
}

// RowLabel is the numbered label printed on the paper log form, e.g. "3. Driving".
func (s DutyStatus) RowLabel() string {
	return fmt.Sprintf("%d. %s", int(s)+1, s.String())
}
