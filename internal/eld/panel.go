package eld

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Header holds the free-text fields of the log form that the driver fills in.
// All are optional.
type Header struct {
	MileageToday        string
	Vehicles            string // truck/tractor and trailer numbers or license plates/state
	Carriers            string
	MainOfficeAddress   string
	HomeTerminalAddress string
}

// Trimmed returns h with surrounding whitespace removed from every field.
func (h Header) Trimmed() Header {
	return Header{
		MileageToday:        strings.TrimSpace(h.MileageToday),
		Vehicles:            strings.TrimSpace(h.Vehicles),
		Carriers:            strings.TrimSpace(h.Carriers),
		MainOfficeAddress:   strings.TrimSpace(h.MainOfficeAddress),
		HomeTerminalAddress: strings.TrimSpace(h.HomeTerminalAddress),
	}
}

// Panel is one "Driver's Daily Log" sheet.
type Panel struct {
	Day        int
	From       string
	To         string
	TotalMiles float64
	CycleHours float64
	Header     Header
	Timeline   Timeline
}

// CycleLabel renders the cycle as printed under the chart, e.g. "70 hours" or "1 hour".
func (p Panel) CycleLabel() string {
	unit := "hour"
	if p.CycleHours > 1 {
		unit = "hours"
	}
	return strconv.FormatFloat(p.CycleHours, 'f', -1, 64) + " " + unit
}

// MilesLabel rounds total miles to one decimal place.
func (p Panel) MilesLabel() string {
	return strconv.FormatFloat(math.Round(p.TotalMiles*10)/10, 'f', -1, 64)
}

// BuildPanels returns PanelCount(cycleHours) panels numbered from day 1.
// Each panel is synthesized independently from the same mileage and cycle, so
// all panels of a trip carry the same timeline.
func BuildPanels(totalMiles, cycleHours float64, pickup, dropoff string) []Panel {
	totalMiles = Sanitize(totalMiles)
	cycleHours = Sanitize(cycleHours)

	n := PanelCount(cycleHours)
	panels := make([]Panel, 0, n)
	for day := 1; day <= n; day++ {
		panels = append(panels, Panel{
			Day:        day,
			From:       CapitalizeFirst(pickup),
			To:         CapitalizeFirst(dropoff),
			TotalMiles: totalMiles,
			CycleHours: cycleHours,
			Timeline:   Synthesize(totalMiles, cycleHours),
		})
	}
	return panels
}

// WithHeader sets the same form header on every panel.
func WithHeader(panels []Panel, h Header) []Panel {
	h = h.Trimmed()
	for i := range panels {
		panels[i].Header = h
	}
	return panels
}

// CapitalizeFirst upper-cases the first rune and leaves the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// HourLabel is the tick label for hour boundary h on the log grid.
func HourLabel(h int) string {
	switch h {
	case 0, 24:
		return "Midnight"
	case 12:
		return "Noon"
	}
	if v := h % 12; v != 0 {
		return strconv.Itoa(v)
	}
	return "12"
}

// HourLabels returns the labels for all 25 hour boundaries.
func HourLabels() []string {
	out := make([]string, Slots)
	for h := range out {
		out[h] = HourLabel(h)
	}
	return out
}

// StatusRowLabels returns the numbered grid row labels in status order.
func StatusRowLabels() []string {
	out := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		out = append(out, s.RowLabel())
	}
	return out
}

// Title is the panel heading.
func (p Panel) Title() string {
	return fmt.Sprintf("Driver's Daily Log - Day %d (24 hours)", p.Day)
}
