package session

import (
	"errors"
	"testing"

	"github.com/golflab/poselabel/pkg/keypoint"
	"github.com/golflab/poselabel/pkg/label"
)

func TestRecordClickLabelsAndCycles(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Fatalf("Expected first catalog keypoint active, got %q", got)
	}

	if err := ctrl.RecordClick(140, 260); err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}

	pos, ok := ctrl.CurrentPersons().ActivePerson().Get(keypoint.Catalog[0].Name)
	if !ok {
		t.Fatal("Expected first catalog keypoint labeled")
	}
	if pos.X != 140 || pos.Y != 260 {
		t.Errorf("Expected (140,260), got (%d,%d)", pos.X, pos.Y)
	}

	// The selection moved on to the second catalog entry
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[1].Name {
		t.Errorf("Expected selection to cycle to %q, got %q", keypoint.Catalog[1].Name, got)
	}
}

func TestRecordClickWrapsAroundCatalog(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	last := keypoint.Catalog[len(keypoint.Catalog)-1].Name
	if err := ctrl.SetActiveKeypoint(last); err != nil {
		t.Fatalf("SetActiveKeypoint failed: %v", err)
	}
	if err := ctrl.RecordClick(1, 2); err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Expected wrap to %q, got %q", keypoint.Catalog[0].Name, got)
	}
}

func TestRecordClickAcceptsOutOfBoundsCoordinates(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	// Coordinates are unclamped and unvalidated against image bounds
	if err := ctrl.RecordClick(-50, 100000); err != nil {
		t.Fatalf("RecordClick rejected out-of-bounds click: %v", err)
	}
	pos, _ := ctrl.CurrentPersons().ActivePerson().Get(keypoint.Catalog[0].Name)
	if pos.X != -50 || pos.Y != 100000 {
		t.Errorf("Expected (-50,100000) recorded as-is, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestRecordClickWithoutActivePerson(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.DeletePerson(0)
	if err := ctrl.RecordClick(1, 2); !errors.Is(err, ErrNoActivePerson) {
		t.Errorf("Expected ErrNoActivePerson, got %v", err)
	}
}

func TestRecordClickBeforeNavigation(t *testing.T) {
	ctrl := newController(t, "a.png")

	if err := ctrl.RecordClick(1, 2); !errors.Is(err, ErrNoCurrentImage) {
		t.Errorf("Expected ErrNoCurrentImage, got %v", err)
	}
}

func TestSetActiveKeypointRejectsUnknownName(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	err := ctrl.SetActiveKeypoint("left_ankle")
	if !errors.Is(err, keypoint.ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Rejected selection must not change state, got %q", got)
	}
}

func TestPopKeypointUndoesLastClick(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.RecordClick(10, 10) // labels catalog[0], selection at catalog[1]
	if err := ctrl.PopKeypoint(); err != nil {
		t.Fatalf("PopKeypoint failed: %v", err)
	}
	if _, ok := ctrl.CurrentPersons().ActivePerson().Get(keypoint.Catalog[0].Name); ok {
		t.Error("Expected catalog[0] label removed")
	}
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Expected selection back at %q, got %q", keypoint.Catalog[0].Name, got)
	}
}

func TestPopKeypointOnUnlabeledReportsWarning(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.SetActiveKeypoint(keypoint.Catalog[2].Name)
	err := ctrl.PopKeypoint()
	if !errors.Is(err, label.ErrNotLabeled) {
		t.Errorf("Expected ErrNotLabeled, got %v", err)
	}
	// The selection still steps back
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[1].Name {
		t.Errorf("Expected selection at %q, got %q", keypoint.Catalog[1].Name, got)
	}
}

func TestPopKeypointStopsAtFirstEntry(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.CurrentPersons().ActivePerson().Set(keypoint.Catalog[0].Name, keypoint.Position{X: 1, Y: 1})
	if err := ctrl.PopKeypoint(); err != nil {
		t.Fatalf("PopKeypoint failed: %v", err)
	}
	// Popping again at the first entry removes nothing new
	if err := ctrl.PopKeypoint(); !errors.Is(err, label.ErrNotLabeled) {
		t.Errorf("Expected ErrNotLabeled at catalog start, got %v", err)
	}
}

func TestAddPersonResetsSelection(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.RecordClick(1, 1) // selection advances
	idx, err := ctrl.AddPerson()
	if err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected new person at index 1, got %d", idx)
	}
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Expected selection reset to %q, got %q", keypoint.Catalog[0].Name, got)
	}
	if ctrl.CurrentPersons().ActiveIndex() != 1 {
		t.Errorf("Expected new person active, got %d", ctrl.CurrentPersons().ActiveIndex())
	}
}

func TestClearActivePerson(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)

	ctrl.RecordClick(1, 1)
	ctrl.RecordClick(2, 2)
	if err := ctrl.ClearActivePerson(); err != nil {
		t.Fatalf("ClearActivePerson failed: %v", err)
	}
	if ctrl.CurrentPersons().ActivePerson().Len() != 0 {
		t.Error("Expected all labels cleared")
	}
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Expected selection reset, got %q", got)
	}
}

func TestSelectPerson(t *testing.T) {
	ctrl := newController(t, "a.png")
	ctrl.Advance(1)
	ctrl.AddPerson()

	if err := ctrl.SelectPerson(0); err != nil {
		t.Fatalf("SelectPerson failed: %v", err)
	}
	if ctrl.CurrentPersons().ActiveIndex() != 0 {
		t.Errorf("Expected active index 0, got %d", ctrl.CurrentPersons().ActiveIndex())
	}

	if err := ctrl.SelectPerson(9); !errors.Is(err, label.ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestNavigationResetsKeypointSelection(t *testing.T) {
	ctrl := newController(t, "a.png", "b.png")
	ctrl.Advance(1)

	ctrl.RecordClick(1, 1)
	ctrl.Advance(1)
	if got := ctrl.ActiveKeypoint().Name; got != keypoint.Catalog[0].Name {
		t.Errorf("Expected selection reset on navigation, got %q", got)
	}
}
