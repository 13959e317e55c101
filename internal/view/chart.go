package view

import (
	"strings"

	"CoinSignals/internal/domain/models"

	"github.com/google/uuid"
)

// Dataset is one line of a line chart.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderDash      []int     `json:"borderDash,omitempty"`
	Tension         float64   `json:"tension"`
	Hidden          bool      `json:"hidden,omitempty"`
}

type ChartData struct {
	Labels   []int     `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartConfig is a renderer-agnostic line chart description.
type ChartConfig struct {
	Type  string    `json:"type"`
	Title string    `json:"title,omitempty"`
	Data  ChartData `json:"data"`
}

// PriceChart renders a plain price line labelled "{SYMBOL} Price".
func PriceChart(symbol string, prices []float64) ChartConfig {
	return ChartConfig{
		Type:  "line",
		Title: strings.ToUpper(symbol) + " Price Chart",
		Data: ChartData{
			Labels: indexLabels(len(prices)),
			Datasets: []Dataset{{
				Label:       strings.ToUpper(symbol) + " Price",
				Data:        nonNil(prices),
				BorderColor: "rgb(75, 192, 192)",
				Tension:     0.1,
			}},
		},
	}
}

// IndicatorChart renders price with SMA, EMA and (hidden) Bollinger bands.
func IndicatorChart(title string, h models.FullHistory) ChartConfig {
	dash := []int{5, 5}
	bandDash := []int{10, 5}
	return ChartConfig{
		Type:  "line",
		Title: title,
		Data: ChartData{
			Labels: indexLabels(len(h.Prices)),
			Datasets: []Dataset{
				{Label: "Price", Data: nonNil(h.Prices), BorderColor: "rgb(0, 255, 0)", BackgroundColor: "rgba(0, 255, 0, 0.1)", Tension: 0.3},
				{Label: "SMA 20", Data: nonNil(h.Indicators.SMA), BorderColor: "rgb(255, 99, 132)", BorderDash: dash, Tension: 0.3},
				{Label: "EMA 50", Data: nonNil(h.Indicators.EMA), BorderColor: "rgb(54, 162, 235)", BorderDash: dash, Tension: 0.3},
				{Label: "Bollinger Upper", Data: nonNil(h.Indicators.Bollinger.Upper), BorderColor: "rgba(255, 206, 86, 0.5)", BorderDash: bandDash, Tension: 0.3, Hidden: true},
				{Label: "Bollinger Lower", Data: nonNil(h.Indicators.Bollinger.Lower), BorderColor: "rgba(255, 206, 86, 0.5)", BorderDash: bandDash, Tension: 0.3, Hidden: true},
			},
		},
	}
}

func indexLabels(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Handle identifies one rendered chart. The caller keeps it and passes it back
// on the next render so the client can dispose of the chart it replaces.
type Handle struct {
	ID       uuid.UUID  `json:"id"`
	Replaces *uuid.UUID `json:"replaces,omitempty"`
}

// Rendered is a chart ready to draw together with its handle. A degraded
// render carries an empty chart so the client clears the one it replaces.
type Rendered struct {
	Handle   Handle            `json:"handle"`
	Chart    ChartConfig       `json:"chart"`
	Degraded bool              `json:"degraded,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// Surface issues chart handles. It keeps no state about live charts.
type Surface struct {
	newID func() uuid.UUID
}

func NewSurface() *Surface {
	return &Surface{newID: uuid.New}
}

// Render wraps cfg in a fresh handle that records prev as the chart being replaced.
func (s *Surface) Render(prev *Handle, cfg ChartConfig) Rendered {
	h := Handle{ID: s.newID()}
	if prev != nil {
		id := prev.ID
		h.Replaces = &id
	}
	return Rendered{Handle: h, Chart: cfg}
}

// ParseHandle turns a client supplied id into a previous handle; empty input means none.
func ParseHandle(raw string) (*Handle, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Handle{ID: id}, nil
}
