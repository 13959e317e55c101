package coingecko

import (
	"CoinSignals/internal/domain/models"
	"CoinSignals/pkg/util"
)

// marketRow mirrors one /coins/markets element. Numeric fields are nullable upstream.
type marketRow struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

func (r marketRow) snapshot() (models.MarketSnapshot, bool) {
	price := deref(r.CurrentPrice)
	if r.ID == "" || price <= 0 {
		return models.MarketSnapshot{}, false
	}
	rank := 0
	if r.MarketCapRank != nil {
		rank = *r.MarketCapRank
	}
	return models.MarketSnapshot{
		ID:                r.ID,
		Symbol:            r.Symbol,
		Name:              r.Name,
		CurrentPrice:      price,
		PriceChangePct24h: deref(r.PriceChangePercentage24h),
		Volume24h:         max(deref(r.TotalVolume), 0),
		MarketCap:         deref(r.MarketCap),
		Rank:              rank,
	}, true
}

// marketChart mirrors /coins/{id}/market_chart. Each pair is [unix_ms, value].
type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

func (m marketChart) series(id string) models.TimeSeries {
	points := make([]models.PricePoint, 0, len(m.Prices))
	for i, p := range m.Prices {
		if p[1] <= 0 {
			continue
		}
		pt := models.PricePoint{Time: util.FromUnixMillis(p[0]), Price: p[1]}
		if i < len(m.TotalVolumes) {
			pt.Volume = m.TotalVolumes[i][1]
		}
		points = append(points, pt)
	}
	return models.TimeSeries{ID: id, Points: points}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
