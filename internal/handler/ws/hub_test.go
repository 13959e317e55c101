package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"CoinSignals/internal/domain/models"
	xlogger "CoinSignals/pkg/logger"
)

func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(msg, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHubSendsLatestAndBroadcasts(t *testing.T) {
	hub := NewHub(Config{}, xlogger.Nop())
	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	first := models.SignalBatch{
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Signals:   []models.Signal{{ID: "bitcoin", Pair: "BTC/USDT", Type: models.SignalBuy}},
	}
	if err := hub.Broadcast(first); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/signals"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	got := readEnvelope(t, conn)
	if got["type"] != "signals" {
		t.Fatalf("unexpected envelope %v", got)
	}
	sigs := got["data"].(map[string]any)["signals"].([]any)
	if len(sigs) != 1 {
		t.Fatalf("expected the latest batch on connect, got %v", sigs)
	}

	second := models.SignalBatch{Timestamp: time.Unix(1700000300, 0).UTC(), Signals: []models.Signal{}}
	if err := hub.Broadcast(second); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	got = readEnvelope(t, conn)
	if n := len(got["data"].(map[string]any)["signals"].([]any)); n != 0 {
		t.Fatalf("expected empty batch, got %d signals", n)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients after close")
	}
}
