package dto

// PanelHeader carries the optional free-text fields of the log form.
type PanelHeader struct {
	MileageToday        string `json:"mileage_today"`
	Vehicles            string `json:"vehicles"`
	Carriers            string `json:"carriers"`
	MainOfficeAddress   string `json:"main_office_address"`
	HomeTerminalAddress string `json:"home_terminal_address"`
}

type PanelResponse struct {
	Day        int            `json:"day"`
	Title      string         `json:"title"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	TotalMiles string         `json:"total_miles"`
	Cycle      string         `json:"cycle"`
	Header     PanelHeader    `json:"header"`
	Statuses   []int          `json:"statuses"`
	Hours      map[string]int `json:"hours"`
	ChartURL   string         `json:"chart_url"`
}

type ELDResponse struct {
	PanelCount int             `json:"panel_count"`
	HourLabels []string        `json:"hour_labels"`
	RowLabels  []string        `json:"row_labels"`
	Panels     []PanelResponse `json:"panels"`
}
