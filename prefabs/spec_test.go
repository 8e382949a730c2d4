package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	character, err := LoadCharacterSpec()
	if err != nil {
		t.Fatalf("LoadCharacterSpec: %v", err)
	}
	for _, name := range RequiredClips {
		if character.Animations[name].Duration <= 0 {
			t.Fatalf("clip %q has no duration", name)
		}
	}
	if character.Locomotion.Acceleration.Z != 90 {
		t.Fatalf("forward acceleration = %v, want 90", character.Locomotion.Acceleration.Z)
	}

	cam, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if cam.Offset != (Vec3Spec{X: -15, Y: 30, Z: -30}) {
		t.Fatalf("camera offset = %+v", cam.Offset)
	}

	props, err := LoadPropsSpec()
	if err != nil {
		t.Fatalf("LoadPropsSpec: %v", err)
	}
	if props.Substeps != 10 || props.Spawn.Interval != 0.25 {
		t.Fatalf("props substeps/interval = %d/%v", props.Substeps, props.Spawn.Interval)
	}

	game, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if game.Background.Color == nil {
		t.Fatalf("game background not parsed")
	}
}

func TestValidate(t *testing.T) {
	clips := func() map[string]ClipSpec {
		return map[string]ClipSpec{
			"idle": {Duration: 1}, "walk": {Duration: 1}, "run": {Duration: 1}, "jump": {Duration: 1},
		}
	}
	validProps := func() PropsSpec {
		return PropsSpec{Substeps: 10, Spawn: SpawnSpec{Interval: 0.25, MinSize: 1, MaxSize: 2}}
	}

	cases := []struct {
		name string
		spec validator
		ok   bool
	}{
		{"character_ok", CharacterSpec{Animations: clips()}, true},
		{"character_missing_jump", CharacterSpec{Animations: func() map[string]ClipSpec {
			c := clips()
			delete(c, "jump")
			return c
		}()}, false},
		{"character_zero_duration", CharacterSpec{Animations: func() map[string]ClipSpec {
			c := clips()
			c["walk"] = ClipSpec{}
			return c
		}()}, false},
		{"character_positive_decel", CharacterSpec{Animations: clips(), Locomotion: LocomotionSpec{Deceleration: Vec3Spec{Z: 1}}}, false},
		{"camera_ok", CameraSpec{Smoothing: 0.001}, true},
		{"camera_smoothing_one", CameraSpec{Smoothing: 1}, false},
		{"props_ok", validProps(), true},
		{"props_no_substeps", func() PropsSpec { p := validProps(); p.Substeps = 0; return p }(), false},
		{"props_bad_shape", func() PropsSpec { p := validProps(); p.Spawn.Shape = "cone"; return p }(), false},
		{"props_inverted_size", func() PropsSpec { p := validProps(); p.Spawn.MaxSize = 0.5; return p }(), false},
		{"game_ok", GameSpec{Width: 1, Height: 1, MaxDT: 0.1}, true},
		{"game_no_max_dt", GameSpec{Width: 1, Height: 1}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[GameSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
		ok   bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, A: 255}, true},
		{`"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, true},
		{`"#fff"`, nil, false},
		{`[1, 2]`, nil, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if !c.ok {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %v, want %v", got.Color, c.want)
			}
		})
	}

	var unset YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("unset color should fall back")
	}
}

func TestScripts(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"demo", "scripts/demo.tengo"},
		{"demo.tengo", "scripts/demo.tengo"},
		{"scripts/demo.tengo", "scripts/demo.tengo"},
		{"prefabs/scripts/demo.tengo", "scripts/demo.tengo"},
	}
	for _, c := range cases {
		if got := cleanScriptPath(c.in); got != c.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	names := Scripts()
	if len(names) < 2 || names[0] != "demo.tengo" {
		t.Fatalf("Scripts() = %v", names)
	}
	if _, err := LoadScript("demo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}
