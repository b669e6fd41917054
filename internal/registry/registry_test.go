package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	ids := []string{"zz_stub", "aa_stub"}
	for _, id := range ids {
		Register(id, func() Game { return stubGame{id: id} })
		t.Cleanup(func() { unregister(id) })
	}

	for _, id := range ids {
		if !Exists(id) {
			t.Errorf("Exists(%q) = false", id)
		}
		g, err := Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}

	list := List()
	var got []string
	for _, info := range list {
		if strings.HasSuffix(info.ID, "_stub") {
			got = append(got, info.ID+"="+info.Title)
		}
	}
	want := "aa_stub=AA_STUB,zz_stub=ZZ_STUB"
	if strings.Join(got, ",") != want {
		t.Errorf("List() stubs = %v, want %s", got, want)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
	if Exists("no_such_game") {
		t.Error("Exists() of unknown game should be false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
	t.Cleanup(func() { unregister("dup_stub") })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
}
