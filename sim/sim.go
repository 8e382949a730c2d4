// Package sim assembles the character, camera and prop systems into one
// frame-driven world.
package sim

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/bilelsahraoui/RemyGame/animation"
	"github.com/bilelsahraoui/RemyGame/assets"
	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/bilelsahraoui/RemyGame/config"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/bilelsahraoui/RemyGame/ecs/entity"
	"github.com/bilelsahraoui/RemyGame/ecs/system"
	"github.com/bilelsahraoui/RemyGame/physics"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// Specs groups the tuning files a simulation is built from.
type Specs struct {
	Character *prefabs.CharacterSpec
	Camera    *prefabs.CameraSpec
	Props     *prefabs.PropsSpec
}

// LoadSpecs reads every tuning file, preferring on-disk overrides.
func LoadSpecs() (Specs, error) {
	ch, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return Specs{}, err
	}
	cam, err := prefabs.LoadCameraSpec()
	if err != nil {
		return Specs{}, err
	}
	props, err := prefabs.LoadPropsSpec()
	if err != nil {
		return Specs{}, err
	}
	return Specs{Character: ch, Camera: cam, Props: props}, nil
}

type Options struct {
	Specs  Specs
	Config config.Config
	// Fetch loads clips; nil builds them from the character spec.
	Fetch assets.FetchFunc
	// Input writes the Input component each frame; nil leaves it idle.
	Input ecs.System
}

// scriptReloader is an input source that can be recompiled in place.
type scriptReloader interface {
	Name() string
	Reload(src []byte) error
}

// Sim owns the world and runs it one frame at a time. Frames before the
// character's clips have loaded do nothing.
type Sim struct {
	world     *ecs.World
	loader    *assets.Loader
	assets    *system.AssetSystem
	physics   *system.PhysicsSystem
	telemetry *system.TelemetrySystem
	input     ecs.System

	player ecs.Entity
	camera ecs.Entity

	frames int
	time   float64
}

func New(opts Options) (*Sim, error) {
	specs := opts.Specs
	if specs.Character == nil || specs.Camera == nil {
		return nil, fmt.Errorf("sim: character and camera specs are required")
	}

	w := ecs.NewWorld()
	loader := assets.NewLoader(opts.Fetch, assets.RequestsFromSpec(specs.Character)...)

	player, err := entity.NewCharacter(w, specs.Character, loader)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	cam, err := entity.NewCamera(w, specs.Camera)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{
		world:     w,
		loader:    loader,
		assets:    system.NewAssetSystem(),
		telemetry: system.NewTelemetrySystem(opts.Config.Debug),
		input:     opts.Input,
		player:    player,
		camera:    cam,
	}

	if specs.Props != nil && (opts.Config.Props || specs.Props.Enabled) {
		pw := physics.NewWorld(entity.WorldConfig(specs.Props))
		spawner := physics.NewSpawner(pw, entity.SpawnerConfig(specs.Props, opts.Config.Seed))
		stepper := physics.NewStepper(pw, spawner, specs.Props.Substeps)
		s.physics = system.NewPhysicsSystem(stepper, specs.Props.Color.Or(colornames.Lightsteelblue))
	}

	if opts.Input != nil {
		w.AddSystem(opts.Input)
	}
	w.AddSystem(system.NewCharacterSystem())
	w.AddSystem(system.NewLocomotionSystem())
	w.AddSystem(system.NewAnimationSystem())
	if s.physics != nil {
		w.AddSystem(s.physics)
	}
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(s.telemetry)

	return s, nil
}

// Start begins loading the character's clips in the background.
func (s *Sim) Start(ctx context.Context) {
	s.loader.Start(ctx)
}

// WaitReady blocks until the clips have loaded. Only the headless driver
// and tests should call it; the window driver polls through Step.
func (s *Sim) WaitReady(ctx context.Context) error {
	_, err := s.loader.Wait(ctx)
	return err
}

// Step advances the world by dt. It returns false, and changes nothing, until
// the clips have loaded; the first ready frame enters Idle and then runs.
func (s *Sim) Step(dt float64) bool {
	if s.assets.Err() != nil {
		return false
	}
	s.assets.Update(s.world, dt)
	if !s.assets.Ready(s.world) {
		return false
	}
	s.world.Update(dt)
	s.frames++
	s.time += dt
	return true
}

// Err returns the asset loading failure, if any.
func (s *Sim) Err() error { return s.assets.Err() }

func (s *Sim) Ready() bool { return s.assets.Ready(s.world) }

func (s *Sim) World() *ecs.World { return s.world }

func (s *Sim) Player() ecs.Entity { return s.player }

func (s *Sim) Camera() ecs.Entity { return s.camera }

// Frames returns how many ready frames have run.
func (s *Sim) Frames() int { return s.frames }

// Time returns the simulated seconds since the first ready frame.
func (s *Sim) Time() float64 { return s.time }

func (s *Sim) Stats() system.Stats { return s.telemetry.Stats() }

func (s *Sim) character() component.Character {
	c, _ := ecs.Get(s.world, s.player, component.CharacterComponent)
	return c
}

// State returns the player's current state name.
func (s *Sim) State() character.StateName {
	return s.character().FSM.Current()
}

// Pose returns the player's pose.
func (s *Sim) Pose() common.Pose {
	t, ok := ecs.Get(s.world, s.player, component.TransformComponent)
	if !ok {
		return common.NewPose()
	}
	return t.Pose
}

// Velocity returns the player's local velocity.
func (s *Sim) Velocity() mgl64.Vec3 {
	if c := s.character(); c.Controller != nil {
		return c.Controller.Velocity()
	}
	return mgl64.Vec3{}
}

// Weights returns the player's blend snapshot, or nil while loading.
func (s *Sim) Weights() []animation.Weight {
	anim, ok := ecs.Get(s.world, s.player, component.AnimationComponent)
	if !ok || anim.Set == nil {
		return nil
	}
	return anim.Set.Weights()
}

// CameraView returns the smoothed camera position and look-at point.
func (s *Sim) CameraView() (position, lookAt mgl64.Vec3) {
	cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent)
	if !ok || cam.Rig == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	return cam.Rig.Position(), cam.Rig.LookAtPoint()
}

// Props returns how many props have been spawned.
func (s *Sim) Props() int {
	if s.physics == nil {
		return 0
	}
	return s.physics.Props()
}

// Space returns the prop physics space, or nil when props are disabled.
func (s *Sim) Space() *cp.Space {
	if s.physics == nil {
		return nil
	}
	return s.physics.Stepper().World().Space()
}

// ApplySpecs retunes the live character and camera. Pose, velocity and
// state are kept.
func (s *Sim) ApplySpecs(specs Specs) {
	if specs.Character != nil {
		if c := s.character(); c.Controller != nil {
			c.Controller.SetParams(entity.LocomotionParams(specs.Character))
		}
	}
	if specs.Camera != nil {
		if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
			entity.ApplyCameraSpec(cam.Rig, specs.Camera)
		}
	}
}

// Reload applies changed prefab files by base name. A file that fails to
// load leaves the previous tuning in place.
func (s *Sim) Reload(names []string) error {
	var firstErr error
	for _, name := range names {
		applied, err := s.reload(name)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("sim: reload %s: %w", name, err)
			}
			continue
		}
		if !applied {
			continue
		}
		log.Printf("sim: reloaded %s", name)
		s.world.Events().Push(ecs.Event{Type: ecs.EventSpecReloaded, Data: name})
	}
	return firstErr
}

func (s *Sim) reload(name string) (bool, error) {
	switch {
	case name == "character.yaml":
		spec, err := prefabs.LoadCharacterSpec()
		if err != nil {
			return false, err
		}
		s.ApplySpecs(Specs{Character: spec})
		return true, nil
	case name == "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return false, err
		}
		s.ApplySpecs(Specs{Camera: spec})
		return true, nil
	case filepath.Ext(name) == ".tengo":
		r, ok := s.input.(scriptReloader)
		if !ok || strings.TrimSuffix(name, ".tengo") != strings.TrimSuffix(r.Name(), ".tengo") {
			return false, nil
		}
		src, err := prefabs.LoadScript(r.Name())
		if err != nil {
			return false, err
		}
		if err := r.Reload(src); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// RunFixed loads the clips and then runs frames fixed steps of dt. onFrame,
// if set, is called after every frame.
func (s *Sim) RunFixed(ctx context.Context, frames int, dt float64, onFrame func(*Sim)) error {
	s.Start(ctx)
	if err := s.WaitReady(ctx); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Step(dt) {
			if err := s.Err(); err != nil {
				return fmt.Errorf("sim: %w", err)
			}
			continue
		}
		if onFrame != nil {
			onFrame(s)
		}
	}
	return nil
}
