package rest

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/capitania/consimar/internal/domain"
)

// stubRealtimeSource emits change events as fast as the socket drains
// them, so a disconnect is guaranteed to race an in-flight send.
type stubRealtimeSource struct {
	exited chan struct{}
}

func (s *stubRealtimeSource) Realtime(ctx context.Context, input chan []string, output chan domain.Event) {
	defer close(s.exited)
	for {
		select {
		case <-ctx.Done():
			return
		case <-input:
		case output <- domain.Event{Type: "INSERT", Table: domain.TableEmbarcaciones, Key: "F-101"}:
		}
	}
}

func TestRealtimeTeardownStopsPump(t *testing.T) {
	stub := &stubRealtimeSource{exited: make(chan struct{})}
	h := &Handler{signal: stub}

	e := echo.New()
	e.GET("/realtime", h.handleRealtime)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	if err := ws.WriteJSON(Request{Type: "listen", Tables: []string{domain.TableEmbarcaciones}}); err != nil {
		t.Fatalf("listen request failed: %v", err)
	}

	var event domain.Event
	if err := ws.ReadJSON(&event); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if event.Table != domain.TableEmbarcaciones {
		t.Fatalf("unexpected event: %+v", event)
	}

	// Disconnect while the pump is mid-stream. The pump must wind down on
	// cancellation; a panic here would fail the whole test binary.
	ws.Close()

	select {
	case <-stub.exited:
	case <-time.After(2 * time.Second):
		t.Fatal("pump still running after client disconnect")
	}
}
