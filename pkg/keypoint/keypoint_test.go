package keypoint

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestVocabularySize(t *testing.T) {
	if len(ExportOrder) != 14 {
		t.Errorf("Expected 14 names in export order, got %d", len(ExportOrder))
	}

	if len(Catalog) != 14 {
		t.Errorf("Expected 14 catalog entries, got %d", len(Catalog))
	}

	if Count != len(ExportOrder) {
		t.Errorf("Count = %d, want %d", Count, len(ExportOrder))
	}
}

func TestOrderingsCoverSameNames(t *testing.T) {
	inCatalog := make(map[string]bool)
	for _, e := range Catalog {
		inCatalog[e.Name] = true
	}

	for _, name := range ExportOrder {
		if !inCatalog[name] {
			t.Errorf("Export order name %q missing from catalog", name)
		}
	}
}

func TestOrderingsDiverge(t *testing.T) {
	// The catalog leads with equipment keypoints while the export order
	// leads with the nose; collapsing the two would be a regression.
	if ExportOrder[0] != "nose" {
		t.Errorf("Expected export order to start with nose, got %q", ExportOrder[0])
	}

	if Catalog[0].Name != "clubhead" {
		t.Errorf("Expected catalog to start with clubhead, got %q", Catalog[0].Name)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("left_knee") {
		t.Error("Expected left_knee to be valid")
	}

	if !IsValid("shaftcenter") {
		t.Error("Expected shaftcenter to be valid")
	}

	if IsValid("left_ankle") {
		t.Error("Expected left_ankle to be invalid")
	}

	if IsValid("") {
		t.Error("Expected empty name to be invalid")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("ball"); err != nil {
		t.Errorf("Validate(ball) returned error: %v", err)
	}

	err := Validate("elbow")
	if err == nil {
		t.Fatal("Expected error for unknown name")
	}
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}

func TestExportIndex(t *testing.T) {
	i, ok := ExportIndex("clubhead")
	if !ok {
		t.Fatal("Expected clubhead to have an export index")
	}
	if i != 11 {
		t.Errorf("Expected clubhead at export slot 11, got %d", i)
	}

	if _, ok := ExportIndex("toe"); ok {
		t.Error("Expected no export index for unknown name")
	}
}

func TestCatalogIndex(t *testing.T) {
	i, ok := CatalogIndex("clubhead")
	if !ok {
		t.Fatal("Expected clubhead to have a catalog index")
	}
	if i != 0 {
		t.Errorf("Expected clubhead at catalog slot 0, got %d", i)
	}
}

func TestPositionJSONRoundTrip(t *testing.T) {
	pos := Position{X: 17, Y: 230}

	data, err := json.Marshal(pos)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[17,230]" {
		t.Errorf("Expected [17,230], got %s", data)
	}

	var decoded Position
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != pos {
		t.Errorf("Round trip changed position: %v -> %v", pos, decoded)
	}
}

func TestPositionUnmarshalRejectsGarbage(t *testing.T) {
	var pos Position
	if err := json.Unmarshal([]byte(`{"x": 1}`), &pos); err == nil {
		t.Error("Expected error for non-array position")
	}
}
