package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/chorpolice/internal/core"
)

type stubGame struct {
	id    string
	score int
}

func (g *stubGame) ID() string                                    { return g.id }
func (g *stubGame) Title() string                                 { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)                      {}
func (g *stubGame) Step(core.InputFrame, float64) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                           {}
func (g *stubGame) State() core.GameState                         { return core.GameState{Score: g.score} }

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, func() Game { return &stubGame{id: id} })
	t.Cleanup(func() { unregister(id) })
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, "zz_stub")

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, want %q", g.ID(), "zz_stub")
	}

	// Every Create returns a fresh instance.
	g2, _ := Create("zz_stub")
	if g == g2 {
		t.Error("Create() returned the same instance twice")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("Create() error = %v, want ErrUnknownGame", err)
	}
	if Exists("no_such_game") {
		t.Error("unknown game should not exist")
	}
}

func TestListIsSortedWithTitles(t *testing.T) {
	register(t, "zz_b")
	register(t, "zz_a")

	var got []GameInfo
	for _, info := range List() {
		if info.ID == "zz_a" || info.ID == "zz_b" {
			got = append(got, info)
		}
	}

	if len(got) != 2 {
		t.Fatalf("List() returned %d stubs, want 2", len(got))
	}
	if got[0].ID != "zz_a" || got[1].ID != "zz_b" {
		t.Errorf("List() order = %v, want zz_a before zz_b", got)
	}
	if got[0].Title != "Stub zz_a" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Stub zz_a")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "zz_dup")

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestRegisterRejectsEmptyIDAndNilFactory(t *testing.T) {
	for name, fn := range map[string]func(){
		"empty id":    func() { Register("", func() Game { return &stubGame{} }) },
		"nil factory": func() { Register("zz_nil", nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register should panic")
				}
			}()
			fn()
		})
	}
	if Exists("zz_nil") {
		t.Error("a rejected registration must not be stored")
	}
}
