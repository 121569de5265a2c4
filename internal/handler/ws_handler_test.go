package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	ws "github.com/lophocvn/lophoc-backend/internal/websocket"
)

// All frames of a session must leave through the single send callback:
// ping replies and forwarded events interleave on one goroutine.
func TestSchedulePumpSerializesWrites(t *testing.T) {
	h := &WSHandler{log: zerolog.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	inbound := make(chan ws.RequestEnvelope)
	events := make(chan *redis.Message)

	var got []interface{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.pump(ctx, h.log, inbound, events, func(v interface{}) error {
			got = append(got, v)
			return nil
		})
	}()

	inbound <- ws.RequestEnvelope{Action: ws.ActionPing}

	payload, _ := json.Marshal(ws.ScheduleEvent{Type: ws.EventScheduleCreated, WeekKey: "2026-W35"})
	events <- &redis.Message{Payload: string(payload)}

	inbound <- ws.RequestEnvelope{Action: "subscribe"}

	cancel()
	<-done

	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	if pong, ok := got[0].(ws.PongResponse); !ok || pong.Event != ws.EventPong {
		t.Errorf("frame 0: expected pong, got %#v", got[0])
	}
	ev, ok := got[1].(*ws.ScheduleEvent)
	if !ok {
		t.Fatalf("frame 1: expected schedule event, got %#v", got[1])
	}
	if ev.Type != ws.EventScheduleCreated || ev.WeekKey != "2026-W35" {
		t.Errorf("frame 1: unexpected event %+v", ev)
	}
	if errResp, ok := got[2].(ws.ErrorResponse); !ok || errResp.Event != ws.EventError {
		t.Errorf("frame 2: expected error reply for unknown action, got %#v", got[2])
	}
}

// A closed Redis subscription ends the session.
func TestSchedulePumpStopsWhenSubscriptionCloses(t *testing.T) {
	h := &WSHandler{log: zerolog.Nop()}
	inbound := make(chan ws.RequestEnvelope)
	events := make(chan *redis.Message)
	close(events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.pump(context.Background(), h.log, inbound, events, func(v interface{}) error {
			t.Error("no frame expected")
			return nil
		})
	}()
	<-done
}
