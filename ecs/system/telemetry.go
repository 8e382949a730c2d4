package system

import (
	"log"

	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/ecs"
)

// Stats counts what the world reported since start.
type Stats struct {
	Frames      int
	Transitions int
	Props       int
	Reloads     int
	State       character.StateName
}

// TelemetrySystem drains the frame's events. It must be the last system.
type TelemetrySystem struct {
	Verbose bool
	stats   Stats
}

func NewTelemetrySystem(verbose bool) *TelemetrySystem {
	return &TelemetrySystem{Verbose: verbose}
}

func (ts *TelemetrySystem) Stats() Stats { return ts.stats }

func (ts *TelemetrySystem) Update(w *ecs.World, _ float64) {
	ts.stats.Frames++
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventStateChanged:
			ts.stats.Transitions++
			if change, ok := evt.Data.(StateChange); ok {
				ts.stats.State = change.To
				ts.logf("state %v -> %v (entity %v, frame %d)", change.From, change.To, evt.Entity, ts.stats.Frames)
			}
		case ecs.EventPropSpawned:
			ts.stats.Props++
			ts.logf("prop %v spawned (body %v)", evt.Entity, evt.Data)
		case ecs.EventAssetsReady:
			ts.logf("assets ready for %v: %v", evt.Entity, evt.Data)
		case ecs.EventSpecReloaded:
			ts.stats.Reloads++
			ts.logf("reloaded %v", evt.Data)
		}
	}
}

func (ts *TelemetrySystem) logf(format string, args ...any) {
	if !ts.Verbose {
		return
	}
	log.Printf("telemetry: "+format, args...)
}
