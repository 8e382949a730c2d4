package physics

import (
	"testing"

	"github.com/bilelsahraoui/RemyGame/common"
)

func TestSpawnerCadence(t *testing.T) {
	cases := []struct {
		name   string
		dt     float64
		frames int
		max    int
		want   int
	}{
		{"quarter_second_ticks", 0.25, 4, 50, 4},
		{"sixteenth_ticks", 0.0625, 16, 50, 4},
		{"long_tick_spawns_several", 1, 1, 50, 4},
		{"capped", 0.25, 100, 5, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultSpawnerConfig()
			cfg.MaxCount = c.max
			s := NewSpawner(NewWorld(DefaultWorldConfig()), cfg)

			total := 0
			for i := 0; i < c.frames; i++ {
				got, err := s.Update(c.dt)
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
				total += len(got)
			}
			if total != c.want || s.Count() != c.want {
				t.Fatalf("spawned %d (count %d), want %d", total, s.Count(), c.want)
			}
		})
	}
}

func TestSpawnerBounds(t *testing.T) {
	cfg := DefaultSpawnerConfig()
	w := NewWorld(DefaultWorldConfig())
	s := NewSpawner(w, cfg)

	bodies, err := s.Update(cfg.Interval * float64(cfg.MaxCount))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(bodies) != cfg.MaxCount {
		t.Fatalf("spawned %d, want %d", len(bodies), cfg.MaxCount)
	}
	for _, b := range bodies {
		def := b.Def()
		for i := 0; i < 3; i++ {
			if def.Position[i] < cfg.AreaMin[i] || def.Position[i] > cfg.AreaMax[i] {
				t.Fatalf("prop %d outside spawn area: %v", b.ID(), def.Position)
			}
		}
		if def.Shape.Size.X() < cfg.MinSize || def.Shape.Size.X() > cfg.MaxSize {
			t.Fatalf("prop %d size %v outside [%v, %v]", b.ID(), def.Shape.Size, cfg.MinSize, cfg.MaxSize)
		}
		if def.Material != cfg.Material {
			t.Fatalf("prop %d material %+v, want %+v", b.ID(), def.Material, cfg.Material)
		}
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	run := func() []common.Pose {
		s := NewSpawner(NewWorld(DefaultWorldConfig()), DefaultSpawnerConfig())
		bodies, err := s.Update(2)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		poses := make([]common.Pose, 0, len(bodies))
		for _, b := range bodies {
			poses = append(poses, b.WorldTransform())
		}
		return poses
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("prop %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestStepperSyncsDynamicBodies(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	cfg := DefaultSpawnerConfig()
	cfg.MaxCount = 3
	st := NewStepper(w, NewSpawner(w, cfg), 0)
	if st.Substeps() != DefaultSubsteps {
		t.Fatalf("substeps = %d, want %d", st.Substeps(), DefaultSubsteps)
	}

	synced := map[int]common.Pose{}
	st.OnSync(func(b *Body, pose common.Pose) {
		synced[b.ID()] = pose
	})

	spawned, err := st.Step(0.5)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(spawned) != 2 {
		t.Fatalf("spawned %d on first step, want 2", len(spawned))
	}
	for _, b := range spawned {
		pose, ok := synced[b.ID()]
		if !ok {
			t.Fatalf("body %d not synced", b.ID())
		}
		if pose != b.WorldTransform() {
			t.Fatalf("synced pose %v != world transform %v", pose, b.WorldTransform())
		}
		if pose.Position.Y() >= b.Def().Position.Y() {
			t.Fatalf("body %d did not fall: %v -> %v", b.ID(), b.Def().Position.Y(), pose.Position.Y())
		}
	}
}

func TestStepperWithoutSpawner(t *testing.T) {
	st := NewStepper(NewWorld(DefaultWorldConfig()), nil, 4)
	spawned, err := st.Step(0.016)
	if err != nil || len(spawned) != 0 {
		t.Fatalf("Step = %v, %v; want nothing", spawned, err)
	}
}
