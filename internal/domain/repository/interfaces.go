package repository

import (
	"context"

	"CoinSignals/internal/domain/models"
)

// MarketDataProvider is the upstream source of market listings and price history.
type MarketDataProvider interface {
	ListMarkets(ctx context.Context, vsCurrency string, perPage, page int) ([]models.MarketSnapshot, error)
	PriceHistory(ctx context.Context, id string, days int) (models.TimeSeries, error)
}

// SignalPublisher fans ranked signals out to downstream consumers.
type SignalPublisher interface {
	PublishSignals(ctx context.Context, batch models.SignalBatch) error
	Close() error
}

type Metrics interface {
	RecordSignals(kind string, n int)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
