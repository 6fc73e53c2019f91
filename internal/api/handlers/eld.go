package handlers

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/eld"
	"trip-log-service/internal/logging"
)

// ELD returns the daily log panels for a distance and duty cycle.
func ELD(w http.ResponseWriter, r *http.Request) {
	miles, cycle, err := eldParams(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	pickup, dropoff := placeParams(q)
	panels := eld.WithHeader(eld.BuildPanels(miles, cycle, pickup, dropoff), headerParams(q))

	writeJSON(w, r, http.StatusOK, dto.ELDResponse{
		PanelCount: len(panels),
		HourLabels: eld.HourLabels(),
		RowLabels:  eld.StatusRowLabels(),
		Panels:     panelResponses(panels, pickup, dropoff),
	})
}

// Chart renders one panel as a PNG.
func Chart(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("day"))
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "panel not found")
		return
	}

	miles, cycle, err := eldParams(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pickup, dropoff := placeParams(r.URL.Query())
	panels := eld.BuildPanels(miles, cycle, pickup, dropoff)
	if day < 1 || day > len(panels) {
		WriteError(w, r, http.StatusNotFound, "panel not found")
		return
	}

	var buf bytes.Buffer
	if err := eld.RenderPNG(&buf, panels[day-1]); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "render chart failed", err)
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// eldParams reads total_miles and cycle_hours. Missing values are 0; negative
// and non-finite values are clamped to 0 by the panel builder.
func eldParams(q url.Values) (miles, cycle float64, err error) {
	if miles, err = floatParam(q, "total_miles"); err != nil {
		return 0, 0, err
	}
	if cycle, err = floatParam(q, "cycle_hours"); err != nil {
		return 0, 0, err
	}
	if cycle > eld.MaxCycleHours && !math.IsInf(cycle, 1) {
		return 0, 0, fmt.Errorf("cycle_hours must be at most %d", eld.MaxCycleHours)
	}
	return miles, cycle, nil
}

func placeParams(q url.Values) (pickup, dropoff string) {
	return strings.TrimSpace(q.Get("pickup")), strings.TrimSpace(q.Get("dropoff"))
}

func headerParams(q url.Values) eld.Header {
	return eld.Header{
		MileageToday:        q.Get("mileage_today"),
		Vehicles:            q.Get("vehicles"),
		Carriers:            q.Get("carriers"),
		MainOfficeAddress:   q.Get("main_office_address"),
		HomeTerminalAddress: q.Get("home_terminal_address"),
	}
}

func headerRequest(h *dto.PanelHeader) eld.Header {
	if h == nil {
		return eld.Header{}
	}
	return eld.Header{
		MileageToday:        h.MileageToday,
		Vehicles:            h.Vehicles,
		Carriers:            h.Carriers,
		MainOfficeAddress:   h.MainOfficeAddress,
		HomeTerminalAddress: h.HomeTerminalAddress,
	}
}

func floatParam(q url.Values, name string) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func panelResponses(panels []eld.Panel, pickup, dropoff string) []dto.PanelResponse {
	out := make([]dto.PanelResponse, 0, len(panels))
	for _, p := range panels {
		hours := make(map[string]int, len(eld.Statuses))
		for status, n := range p.Timeline.Totals() {
			hours[status.String()] = n
		}
		out = append(out, dto.PanelResponse{
			Day:        p.Day,
			Title:      p.Title(),
			From:       p.From,
			To:         p.To,
			TotalMiles: p.MilesLabel(),
			Cycle:      p.CycleLabel(),
			Header: dto.PanelHeader{
				MileageToday:        p.Header.MileageToday,
				Vehicles:            p.Header.Vehicles,
				Carriers:            p.Header.Carriers,
				MainOfficeAddress:   p.Header.MainOfficeAddress,
				HomeTerminalAddress: p.Header.HomeTerminalAddress,
			},
			Statuses: p.Timeline.Ints(),
			Hours:    hours,
			ChartURL: chartURL(p, pickup, dropoff),
		})
	}
	return out
}

func chartURL(p eld.Panel, pickup, dropoff string) string {
	q := url.Values{}
	q.Set("total_miles", strconv.FormatFloat(p.TotalMiles, 'f', -1, 64))
	q.Set("cycle_hours", strconv.FormatFloat(p.CycleHours, 'f', -1, 64))
	if pickup != "" {
		q.Set("pickup", pickup)
	}
	if dropoff != "" {
		q.Set("dropoff", dropoff)
	}
	return fmt.Sprintf("/v1/eld/panels/%d/chart.png?%s", p.Day, q.Encode())
}

func roundTenth(v float64) float64 { return math.Round(v*10) / 10 }
