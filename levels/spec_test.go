package levels

import (
	"strings"
	"testing"

	"github.com/milk9111/physics2d/physics"
)

const minimalLevel = `
name: test
physics:
  maxSpeed: 2
  gravity: 0.3
bodies:
  - name: player
    x: 10
    y: 20
    width: 24
    height: 32
    movable: true
    mass: 1
  - name: ground
    x: 0
    y: 100
    width: 200
    height: 16
  - name: spikes
    x: 50
    y: 84
    width: 16
    height: 16
    trigger:
      kind: death
`

func TestParseMinimalLevel(t *testing.T) {
	s, err := Parse([]byte(minimalLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "test" {
		t.Fatalf("name = %q, want test", s.Name)
	}
	if s.Physics.MaxSpeed != 2 || s.Physics.Gravity != 0.3 {
		t.Fatalf("physics = %+v", s.Physics)
	}
	if len(s.Bodies) != 3 {
		t.Fatalf("bodies = %d, want 3", len(s.Bodies))
	}
}

func TestParseAppliesMaxSpeedDefault(t *testing.T) {
	s, err := Parse([]byte("bodies: []"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Physics.MaxSpeed != physics.DefaultMaxSpeed {
		t.Fatalf("maxSpeed = %v, want default %v", s.Physics.MaxSpeed, physics.DefaultMaxSpeed)
	}
}

func TestParseRejectsBadSpecs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unnamed_body",
			yaml: "bodies:\n  - x: 1\n    width: 1\n    height: 1\n",
			want: "no name",
		},
		{
			name: "duplicate_name",
			yaml: "bodies:\n  - name: a\n    width: 1\n    height: 1\n  - name: a\n    width: 1\n    height: 1\n",
			want: "duplicate",
		},
		{
			name: "zero_size",
			yaml: "bodies:\n  - name: a\n    width: 0\n    height: 1\n",
			want: "non-positive size",
		},
		{
			name: "unknown_trigger_kind",
			yaml: "bodies:\n  - name: a\n    width: 1\n    height: 1\n    trigger:\n      kind: teleport\n",
			want: "unknown trigger kind",
		},
		{
			name: "add_force_without_force",
			yaml: "bodies:\n  - name: a\n    width: 1\n    height: 1\n    trigger:\n      kind: addForce\n",
			want: "2-component force",
		},
		{
			name: "script_without_path",
			yaml: "bodies:\n  - name: a\n    width: 1\n    height: 1\n    trigger:\n      kind: script\n",
			want: "script path",
		},
		{
			name: "not_yaml",
			yaml: "::::",
			want: "parse",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", c.want)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want substring %q", err, c.want)
			}
		})
	}
}

func TestBuildWiresWorld(t *testing.T) {
	s, err := Parse([]byte(minimalLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(w.Movables) != 1 {
		t.Fatalf("movables = %d, want 1", len(w.Movables))
	}
	player, ok := w.Body("player").(*physics.Movable)
	if !ok {
		t.Fatalf("player is %T, want *physics.Movable", w.Body("player"))
	}
	if player.Mass() != 1 {
		t.Fatalf("player mass = %v, want 1", player.Mass())
	}
	if w.Body("ground") == nil || w.Body("spikes") == nil {
		t.Fatalf("static bodies missing from world")
	}
	if got := len(w.Body("spikes").Body().Triggers()); got != 1 {
		t.Fatalf("spikes triggers = %d, want 1", got)
	}
	if got := len(w.Body("ground").Body().Triggers()); got != 0 {
		t.Fatalf("ground triggers = %d, want 0", got)
	}
}

func TestBuildRejectsMasslessMovable(t *testing.T) {
	s, err := Parse([]byte("bodies:\n  - name: a\n    width: 1\n    height: 1\n    movable: true\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := s.Build(); err == nil {
		t.Fatalf("expected build failure for massless movable")
	}
}

// The embedded playground level has to stay loadable; the demo boots from it.
func TestEmbeddedPlaygroundBuilds(t *testing.T) {
	s, err := LoadLevel("playground")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	w, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.Body("player") == nil {
		t.Fatalf("playground has no player body")
	}
	if got := len(w.Body("bounce_pad").Body().Triggers()); got != 1 {
		t.Fatalf("bounce pad should carry its script trigger, got %d", got)
	}
}

func TestReloadScriptsSwapsTriggersInPlace(t *testing.T) {
	s, err := LoadLevel("playground")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	w, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	pad := w.Body("bounce_pad").Body()
	old := pad.Triggers()[0]

	player, _ := w.Body("player").(*physics.Movable)
	if player == nil {
		t.Fatalf("playground has no movable player")
	}
	player.SetPosition(123, 45)

	if err := w.ReloadScripts(); err != nil {
		t.Fatalf("ReloadScripts: %v", err)
	}

	if got := len(pad.Triggers()); got != 1 {
		t.Fatalf("bounce pad triggers = %d, want 1", got)
	}
	if pad.Triggers()[0] == old {
		t.Fatalf("script trigger was not recompiled")
	}
	if x := player.Position().Component(0); x != 123 {
		t.Fatalf("player position changed across script reload: x = %v", x)
	}
}

func TestScriptPathCleaning(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"scripts/bounce.tengo", "scripts/bounce.tengo"},
		{"levels/scripts/bounce.tengo", "scripts/bounce.tengo"},
		{"bounce.tengo", "scripts/bounce.tengo"},
	}
	for _, c := range cases {
		if got := cleanScriptPath(c.in); got != c.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLevelPathCleaning(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"playground", "playground.yaml"},
		{"playground.yaml", "playground.yaml"},
		{"levels/playground.yml", "playground.yml"},
	}
	for _, c := range cases {
		if got := cleanLevelPath(c.in); got != c.want {
			t.Fatalf("cleanLevelPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
