package handlers

import (
	"testing"

	"geiger_console/internal/models"
	"geiger_console/internal/service"
)

func TestHub_LatestWinsPerSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	defer sub.Unsubscribe()

	hub.RenderTelemetry(service.TelemetryView{DoseRate: "0.100"})
	hub.RenderTelemetry(service.TelemetryView{DoseRate: "0.200"})
	hub.RenderTelemetry(service.TelemetryView{DoseRate: "0.300"})

	got := <-sub.Telemetry
	if got.DoseRate != "0.300" {
		t.Fatalf("want latest value, got %q", got.DoseRate)
	}
	select {
	case v := <-sub.Telemetry:
		t.Fatalf("stale value left in channel: %+v", v)
	default:
	}
}

func TestHub_FansOutToAllSubscribers(t *testing.T) {
	hub := NewHub()
	a, b := hub.Subscribe(), hub.Subscribe()
	defer a.Unsubscribe()
	defer b.Unsubscribe()

	hub.RenderConnection(models.ConnectionState{Status: models.Connected})

	for i, s := range []*Subscription{a, b} {
		select {
		case st := <-s.Connection:
			if st.Status != models.Connected {
				t.Fatalf("subscriber %d got %+v", i, st)
			}
		default:
			t.Fatalf("subscriber %d got nothing", i)
		}
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("want 1 subscriber")
	}
	sub.Unsubscribe()
	hub.RenderTelemetry(service.TelemetryView{DoseRate: "1.000"})

	if hub.Subscribers() != 0 {
		t.Fatalf("want 0 subscribers")
	}
	select {
	case v := <-sub.Telemetry:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", v)
	default:
	}
}
