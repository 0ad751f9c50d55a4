package api

import (
	"context"
	"sync"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/history"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
)

// -----------------------------------------------------------------------------
// Event Payloads
// -----------------------------------------------------------------------------

// AssumptionsEvent carries the full assumption set after an update.
type AssumptionsEvent struct {
	Assumptions pilot.Assumptions `json:"assumptions"`
}

// MetricsEvent carries the derived metrics after an assumption change.
type MetricsEvent struct {
	Metrics pilot.Metrics `json:"metrics"`
}

// RenderEvent carries the history record of a completed render.
type RenderEvent struct {
	Record history.Record `json:"record"`
}

// -----------------------------------------------------------------------------
// EventBroadcaster Interface
// -----------------------------------------------------------------------------

// EventBroadcaster defines the interface for pushing domain events to
// connected clients. Handlers depend on this interface so tests can
// observe events without a running hub.
type EventBroadcaster interface {
	// BroadcastAssumptionsUpdated notifies clients that the assumption
	// set changed.
	BroadcastAssumptionsUpdated(a pilot.Assumptions) error

	// BroadcastMetricsUpdated notifies clients of recomputed metrics.
	BroadcastMetricsUpdated(m pilot.Metrics) error

	// BroadcastRenderCompleted notifies clients that a PDF render finished.
	BroadcastRenderCompleted(rec history.Record) error
}

// -----------------------------------------------------------------------------
// HubEventBroadcaster Implementation
// -----------------------------------------------------------------------------

// HubEventBroadcaster wraps the WebSocket Hub to implement EventBroadcaster.
type HubEventBroadcaster struct {
	hub *Hub
}

// NewHubEventBroadcaster creates a new HubEventBroadcaster.
func NewHubEventBroadcaster(hub *Hub) *HubEventBroadcaster {
	return &HubEventBroadcaster{hub: hub}
}

// BroadcastAssumptionsUpdated sends an assumptions.updated event to the
// assumptions channel.
func (b *HubEventBroadcaster) BroadcastAssumptionsUpdated(a pilot.Assumptions) error {
	msg := &WSMessage{
		Type:      EventTypeAssumptionsUpdated,
		Data:      AssumptionsEvent{Assumptions: a},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return b.hub.BroadcastToChannel(ChannelAssumptions, msg)
}

// BroadcastMetricsUpdated sends a metrics.updated event to the
// assumptions channel.
func (b *HubEventBroadcaster) BroadcastMetricsUpdated(m pilot.Metrics) error {
	msg := &WSMessage{
		Type:      EventTypeMetricsUpdated,
		Data:      MetricsEvent{Metrics: m},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return b.hub.BroadcastToChannel(ChannelAssumptions, msg)
}

// BroadcastRenderCompleted sends a render.completed event to the
// renders channel.
func (b *HubEventBroadcaster) BroadcastRenderCompleted(rec history.Record) error {
	msg := &WSMessage{
		Type:      EventTypeRenderCompleted,
		Data:      RenderEvent{Record: rec},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return b.hub.BroadcastToChannel(ChannelRenders, msg)
}

// -----------------------------------------------------------------------------
// Store Event Bridge
// -----------------------------------------------------------------------------

// ForwardStoreEvents relays store changes to the broadcaster until ctx
// is done. Changes arriving through any path (API PUT, file watcher,
// shell /set) reach WebSocket clients the same way.
func ForwardStoreEvents(ctx context.Context, store *pilot.Store, b EventBroadcaster) {
	ch := store.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-ch:
			b.BroadcastAssumptionsUpdated(a)
			b.BroadcastMetricsUpdated(pilot.Compute(a))
		}
	}
}

// -----------------------------------------------------------------------------
// Mock Event Broadcaster for Testing
// -----------------------------------------------------------------------------

// MockEventBroadcaster records events instead of broadcasting them.
type MockEventBroadcaster struct {
	mu                 sync.Mutex
	AssumptionsUpdates []pilot.Assumptions
	MetricsUpdates     []pilot.Metrics
	RenderCompletions  []history.Record
	BroadcastError     error
}

// NewMockEventBroadcaster creates a new MockEventBroadcaster.
func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

// BroadcastAssumptionsUpdated records the assumption update.
func (m *MockEventBroadcaster) BroadcastAssumptionsUpdated(a pilot.Assumptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BroadcastError != nil {
		return m.BroadcastError
	}
	m.AssumptionsUpdates = append(m.AssumptionsUpdates, a)
	return nil
}

// BroadcastMetricsUpdated records the metrics update.
func (m *MockEventBroadcaster) BroadcastMetricsUpdated(metrics pilot.Metrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BroadcastError != nil {
		return m.BroadcastError
	}
	m.MetricsUpdates = append(m.MetricsUpdates, metrics)
	return nil
}

// BroadcastRenderCompleted records the render completion.
func (m *MockEventBroadcaster) BroadcastRenderCompleted(rec history.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BroadcastError != nil {
		return m.BroadcastError
	}
	m.RenderCompletions = append(m.RenderCompletions, rec)
	return nil
}

// Counts returns how many events of each kind were recorded.
func (m *MockEventBroadcaster) Counts() (assumptions, metrics, renders int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AssumptionsUpdates), len(m.MetricsUpdates), len(m.RenderCompletions)
}

// Reset clears all recorded events.
func (m *MockEventBroadcaster) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssumptionsUpdates = nil
	m.MetricsUpdates = nil
	m.RenderCompletions = nil
	m.BroadcastError = nil
}
