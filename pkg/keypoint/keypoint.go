// Package keypoint defines the fixed vocabulary of pose and golf-equipment
// keypoints and the pixel position type used to label them.
//
// Two orderings exist over the same 14 names. ExportOrder is the canonical
// sequence used for numeric array export: index i is the permanent slot for
// that keypoint in any exported array. Catalog is the display ordering used
// for UI iteration, pairing each name with a color and a short label. The
// two must never be collapsed into one; export depends on the former and
// display on the latter.
package keypoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidName is returned when a keypoint name is not part of the
// fixed vocabulary.
var ErrInvalidName = errors.New("invalid keypoint name")

// Position is a pixel coordinate in image space. Coordinates are not
// validated against image bounds; out-of-image clicks are recorded as-is.
type Position struct {
	X int
	Y int
}

// MarshalJSON encodes the position as a 2-element array [x, y].
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a 2-element array [x, y].
func (p *Position) UnmarshalJSON(data []byte) error {
	var xy [2]int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("failed to decode keypoint position: %w", err)
	}
	p.X = xy[0]
	p.Y = xy[1]
	return nil
}

// ExportOrder is the canonical keypoint ordering for numeric export.
// Slot i of any exported visibility array refers to ExportOrder[i].
var ExportOrder = []string{
	"nose",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
	"clubhead",
	"shaftcenter",
	"ball",
}

// Count is the number of keypoints in the vocabulary.
var Count = len(ExportOrder)

// CatalogEntry pairs a keypoint name with its display metadata.
type CatalogEntry struct {
	Name  string
	Short string
	Color color.NRGBA
}

const catalogAlpha = 200

// Catalog lists the vocabulary in display order with per-keypoint
// overlay color and short label. The equipment keypoints lead because
// they are labeled most often.
var Catalog = []CatalogEntry{
	{Name: "clubhead", Short: "CH", Color: color.NRGBA{255, 0, 0, catalogAlpha}},
	{Name: "shaftcenter", Short: "SC", Color: color.NRGBA{0, 0, 255, catalogAlpha}},
	{Name: "ball", Short: "B", Color: color.NRGBA{255, 255, 255, catalogAlpha}},
	{Name: "nose", Short: "N", Color: color.NRGBA{255, 128, 0, catalogAlpha}},
	{Name: "left_shoulder", Short: "LS", Color: color.NRGBA{255, 255, 0, catalogAlpha}},
	{Name: "right_shoulder", Short: "RS", Color: color.NRGBA{255, 255, 0, catalogAlpha}},
	{Name: "left_elbow", Short: "LE", Color: color.NRGBA{0, 255, 255, catalogAlpha}},
	{Name: "right_elbow", Short: "RE", Color: color.NRGBA{0, 255, 255, catalogAlpha}},
	{Name: "left_wrist", Short: "LW", Color: color.NRGBA{255, 0, 255, catalogAlpha}},
	{Name: "right_wrist", Short: "RW", Color: color.NRGBA{255, 0, 255, catalogAlpha}},
	{Name: "left_hip", Short: "LH", Color: color.NRGBA{128, 128, 128, catalogAlpha}},
	{Name: "right_hip", Short: "RH", Color: color.NRGBA{128, 128, 128, catalogAlpha}},
	{Name: "left_knee", Short: "LK", Color: color.NRGBA{0, 0, 0, catalogAlpha}},
	{Name: "right_knee", Short: "RK", Color: color.NRGBA{0, 0, 0, catalogAlpha}},
}

var exportIndex map[string]int
var catalogIndex map[string]int

func init() {
	exportIndex = make(map[string]int, len(ExportOrder))
	for i, name := range ExportOrder {
		exportIndex[name] = i
	}
	catalogIndex = make(map[string]int, len(Catalog))
	for i, e := range Catalog {
		catalogIndex[e.Name] = i
	}

	// The two orderings must cover exactly the same name set. A mismatch
	// is a configuration error caught at startup, not at use time.
	if len(exportIndex) != len(ExportOrder) {
		panic("keypoint: duplicate name in export order")
	}
	if len(catalogIndex) != len(Catalog) {
		panic("keypoint: duplicate name in catalog")
	}
	if len(catalogIndex) != len(exportIndex) {
		panic(fmt.Sprintf("keypoint: catalog has %d names, export order has %d",
			len(catalogIndex), len(exportIndex)))
	}
	for name := range catalogIndex {
		if _, ok := exportIndex[name]; !ok {
			panic(fmt.Sprintf("keypoint: catalog name %q missing from export order", name))
		}
	}
}

// IsValid reports whether name belongs to the fixed vocabulary.
func IsValid(name string) bool {
	_, ok := exportIndex[name]
	return ok
}

// Validate returns ErrInvalidName (with the offending name) if name is
// not part of the vocabulary.
func Validate(name string) error {
	if !IsValid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ExportIndex returns the canonical export slot for name.
func ExportIndex(name string) (int, bool) {
	i, ok := exportIndex[name]
	return i, ok
}

// CatalogIndex returns the display-order index for name.
func CatalogIndex(name string) (int, bool) {
	i, ok := catalogIndex[name]
	return i, ok
}
