package character

import (
	"math"
	"testing"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/go-gl/mathgl/mgl64"
)

func TestDecelerateNeverReversesForward(t *testing.T) {
	coeff := DefaultParams().Deceleration
	cases := []struct {
		name string
		vz   float64
		dt   float64
	}{
		{"small_step", 10, 0.016},
		{"frame_drop", 10, 0.5},
		{"huge_dt", 3, 10},
		{"tiny_velocity", 1e-6, 1},
		{"negative_huge_dt", -4, 10},
		{"negative_small_step", -4, 0.016},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := mgl64.Vec3{0, 0, c.vz}
			got := v.Add(decelerate(v, coeff, c.dt)).Z()
			if c.vz > 0 && got < 0 {
				t.Fatalf("forward velocity reversed: %v -> %v", c.vz, got)
			}
			if c.vz < 0 && got > 0 {
				t.Fatalf("backward velocity reversed: %v -> %v", c.vz, got)
			}
			if math.Abs(got) > math.Abs(c.vz) {
				t.Fatalf("deceleration increased speed: %v -> %v", c.vz, got)
			}
		})
	}
}

func TestControllerAcceleration(t *testing.T) {
	const dt = 0.125
	cases := []struct {
		name  string
		input Input
		state StateName
		want  float64
	}{
		{"walk", Input{Forward: true}, StateWalk, 90 * dt},
		{"run_doubles", Input{Forward: true, Run: true}, StateRun, 180 * dt},
		{"backward", Input{Backward: true}, StateWalk, -90 * dt},
		{"jump_zeroes", Input{Forward: true, Run: true}, StateJump, 0},
		{"idle_no_input", Input{}, StateIdle, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := NewController(DefaultParams(), common.NewPose())
			ctrl.Update(dt, c.input, c.state)

			if got := ctrl.Velocity().Z(); !near(got, c.want) {
				t.Fatalf("velocity.z = %v, want %v", got, c.want)
			}
			// identity orientation: forward is +Z
			if got := ctrl.Pose().Position.Z(); !near(got, c.want*dt) {
				t.Fatalf("position.z = %v, want %v", got, c.want*dt)
			}
		})
	}
}

func TestControllerJumpKeepsMomentum(t *testing.T) {
	ctrl := NewController(DefaultParams(), common.NewPose())
	ctrl.Update(0.125, Input{Forward: true}, StateWalk)
	before := ctrl.Velocity().Z()

	ctrl.Update(0.125, Input{Forward: true}, StateJump)

	after := ctrl.Velocity().Z()
	if after >= before || after <= 0 {
		t.Fatalf("jump should only decay forward speed: %v -> %v", before, after)
	}
}

func TestControllerTurning(t *testing.T) {
	cases := []struct {
		name  string
		input Input
		state StateName
		want  float64
	}{
		{"left_positive", Input{Left: true}, StateIdle, math.Pi / 4},
		{"right_negative", Input{Right: true}, StateIdle, -math.Pi / 4},
		{"both_cancel", Input{Left: true, Right: true}, StateIdle, 0},
		{"run_turns_at_walk_rate", Input{Left: true, Run: true}, StateRun, math.Pi / 4},
		{"jump_still_turns", Input{Left: true}, StateJump, math.Pi / 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := NewController(DefaultParams(), common.NewPose())
			ctrl.Update(0.25, c.input, c.state)

			if got := common.Heading(ctrl.Pose().Rotation); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("heading = %v, want %v", got, c.want)
			}
		})
	}
}

func TestControllerTurnIsIncremental(t *testing.T) {
	pose := common.NewPose()
	pose.Rotation = common.YawQuat(math.Pi / 2)
	ctrl := NewController(DefaultParams(), pose)

	ctrl.Update(0.25, Input{Left: true}, StateIdle)

	if got := common.Heading(ctrl.Pose().Rotation); math.Abs(got-3*math.Pi/4) > 1e-9 {
		t.Fatalf("heading = %v, want %v", got, 3*math.Pi/4)
	}
}

func TestControllerMovesAlongHeading(t *testing.T) {
	pose := common.NewPose()
	pose.Rotation = common.YawQuat(math.Pi / 2) // facing +X
	ctrl := NewController(DefaultParams(), pose)

	ctrl.Update(0.125, Input{Forward: true}, StateWalk)

	p := ctrl.Pose().Position
	want := 90 * 0.125 * 0.125
	if math.Abs(p.X()-want) > 1e-9 || math.Abs(p.Z()) > 1e-9 {
		t.Fatalf("position = %v, want (%v, 0, 0)", p, want)
	}
}

func TestControllerSetParamsKeepsState(t *testing.T) {
	ctrl := NewController(DefaultParams(), common.NewPose())
	ctrl.Update(0.125, Input{Forward: true}, StateWalk)
	pose, vel := ctrl.Pose(), ctrl.Velocity()

	p := DefaultParams()
	p.Acceleration = mgl64.Vec3{1, 0.25, 45}
	ctrl.SetParams(p)

	if ctrl.Pose() != pose || ctrl.Velocity() != vel {
		t.Fatalf("SetParams changed pose or velocity")
	}
	if ctrl.Params().Acceleration.Z() != 45 {
		t.Fatalf("params not applied")
	}
}
