// Command remysim runs the character simulation without a window, driving
// the character from a tengo input script at a fixed timestep.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/bilelsahraoui/RemyGame/config"
	"github.com/bilelsahraoui/RemyGame/ecs/system"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/bilelsahraoui/RemyGame/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	specs, err := sim.LoadSpecs()
	if err != nil {
		log.Fatalf("failed to load specs: %v", err)
	}
	src, err := prefabs.LoadScript(cfg.Script)
	if err != nil {
		log.Fatalf("failed to load script: %v", err)
	}
	input, err := system.NewScriptedInputSystem(cfg.Script, src)
	if err != nil {
		log.Fatal(err)
	}

	s, err := sim.New(sim.Options{Specs: specs, Config: cfg, Input: input})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if cfg.Watch {
		watcher, err = prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	every := int(math.Round(cfg.LogEvery.Seconds() / cfg.DT))
	if every < 1 {
		every = 1
	}

	err = s.RunFixed(ctx, cfg.Frames, cfg.DT, func(s *sim.Sim) {
		if watcher != nil {
			if names := watcher.Drain(); len(names) > 0 {
				if err := s.Reload(names); err != nil {
					log.Printf("reload: %v", err)
				}
			}
		}
		if s.Frames()%every == 0 {
			logSummary(s)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	stats := s.Stats()
	log.Printf("done: %d frames, %.2fs simulated, %d transitions, %d props, final state %v",
		s.Frames(), s.Time(), stats.Transitions, s.Props(), s.State())
	if err := input.Err(); err != nil {
		log.Printf("script error: %v", err)
	}
}

func logSummary(s *sim.Sim) {
	pose := s.Pose()
	v := s.Velocity()
	camPos, _ := s.CameraView()
	log.Printf("t=%6.2fs %-4v pos=(%7.2f %7.2f %7.2f) heading=%6.1f° v.z=%7.2f cam=(%7.2f %7.2f %7.2f) props=%d",
		s.Time(), s.State(),
		pose.Position.X(), pose.Position.Y(), pose.Position.Z(),
		common.Heading(pose.Rotation)*180/math.Pi, v.Z(),
		camPos.X(), camPos.Y(), camPos.Z(),
		s.Props())
}
