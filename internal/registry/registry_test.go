package registry

import (
	"testing"

	"github.com/vovakirdan/giraffe-run/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string                           { return s.id }
func (s stubGame) Title() string                        { return "Stub " + s.id }
func (s stubGame) Reset(core.RuntimeConfig)             {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen)                  {}
func (s stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return stubGame{id: "stub-a"} })

	list := List()
	posB, posA := -1, -1
	for i, info := range list {
		switch info.ID {
		case "stub-b":
			posB = i
			if info.Title != "Stub stub-b" {
				t.Errorf("title = %q, expected %q", info.Title, "Stub stub-b")
			}
		case "stub-a":
			posA = i
		}
	}
	if posA < 0 || posB < 0 {
		t.Fatalf("registered games missing from List(): %+v", list)
	}
	if posB > posA {
		t.Error("List() should keep registration order")
	}

	if !Exists("stub-a") {
		t.Error("Exists(stub-a) should be true")
	}
	if Exists("nope") {
		t.Error("Exists(nope) should be false")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("nope"); err == nil {
		t.Error("Create() should fail for unknown IDs")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
}
