// Package label holds the in-memory annotation model: a Person maps
// keypoint names to pixel positions, and a PersonSet is the ordered list
// of persons labeled on a single image together with the active-person
// selection the UI labels into.
package label

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golflab/poselabel/pkg/keypoint"
)

// ErrNotLabeled is returned when removing a keypoint that has no label.
var ErrNotLabeled = errors.New("keypoint not labeled")

// Visibility values follow the COCO keypoint convention.
const (
	// VisibilityUnlabeled marks an export slot with no recorded position.
	VisibilityUnlabeled = 0
	// VisibilityLabeled marks a slot that is labeled and visible.
	VisibilityLabeled = 2
)

// Person is one subject's keypoint label set for one image. Partial
// labeling is normal; not all vocabulary names need be present.
type Person struct {
	labels map[string]keypoint.Position
}

// NewPerson creates a person with no labels.
func NewPerson() *Person {
	return &Person{labels: make(map[string]keypoint.Position)}
}

// Len returns the number of labeled keypoints.
func (p *Person) Len() int {
	return len(p.labels)
}

// Set records a position for name, overwriting any existing label.
// Returns keypoint.ErrInvalidName if name is outside the vocabulary.
func (p *Person) Set(name string, pos keypoint.Position) error {
	if err := keypoint.Validate(name); err != nil {
		return err
	}
	p.labels[name] = pos
	return nil
}

// Get returns the position labeled for name, if any.
func (p *Person) Get(name string) (keypoint.Position, bool) {
	pos, ok := p.labels[name]
	return pos, ok
}

// Remove deletes the label for name. Returns ErrNotLabeled if name has
// no current label.
func (p *Person) Remove(name string) error {
	if _, ok := p.labels[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotLabeled, name)
	}
	delete(p.labels, name)
	return nil
}

// Clear removes all labels. Idempotent.
func (p *Person) Clear() {
	p.labels = make(map[string]keypoint.Position)
}

// Label is a (name, position) pair.
type Label struct {
	Name string
	Pos  keypoint.Position
}

// Items returns the labeled (name, position) pairs in canonical export
// order, so iteration is deterministic regardless of insertion order.
func (p *Person) Items() []Label {
	items := make([]Label, 0, len(p.labels))
	for _, name := range keypoint.ExportOrder {
		if pos, ok := p.labels[name]; ok {
			items = append(items, Label{Name: name, Pos: pos})
		}
	}
	return items
}

// ExportArrays produces the COCO-style numeric arrays for this person: a
// visibility array of length keypoint.Count (0 unlabeled, 2 labeled) and
// an interleaved coordinate array of twice that length (x0,y0,x1,y1,...),
// both in canonical export order. Unlabeled slots contribute 0,0.
func (p *Person) ExportArrays() (v []int, xy []int) {
	v = make([]int, keypoint.Count)
	xy = make([]int, keypoint.Count*2)
	for i, name := range keypoint.ExportOrder {
		pos, ok := p.labels[name]
		if !ok {
			continue
		}
		v[i] = VisibilityLabeled
		xy[i*2] = pos.X
		xy[i*2+1] = pos.Y
	}
	return v, xy
}

// Clone returns an independent copy of the person.
func (p *Person) Clone() *Person {
	c := NewPerson()
	for name, pos := range p.labels {
		c.labels[name] = pos
	}
	return c
}

// MarshalJSON encodes the person as {"name": [x, y], ...}.
func (p *Person) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.labels)
}

// UnmarshalJSON decodes {"name": [x, y], ...}, rejecting any name
// outside the vocabulary with keypoint.ErrInvalidName.
func (p *Person) UnmarshalJSON(data []byte) error {
	var labels map[string]keypoint.Position
	if err := json.Unmarshal(data, &labels); err != nil {
		return fmt.Errorf("failed to decode person labels: %w", err)
	}
	for name := range labels {
		if err := keypoint.Validate(name); err != nil {
			return err
		}
	}
	if labels == nil {
		labels = make(map[string]keypoint.Position)
	}
	p.labels = labels
	return nil
}
