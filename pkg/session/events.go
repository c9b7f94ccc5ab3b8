package session

import (
	"github.com/golflab/poselabel/pkg/keypoint"
)

// This file carries the discrete input events the UI delivers to the
// core. The active-keypoint selection cycles through the catalog order
// the way a row of radio buttons would: each recorded click labels the
// selected keypoint and advances the selection, and popping a label
// steps the selection back.

// ActiveKeypoint returns the catalog entry the next click labels.
func (c *Controller) ActiveKeypoint() keypoint.CatalogEntry {
	return keypoint.Catalog[c.activeKpt]
}

// SetActiveKeypoint selects the keypoint the next click labels.
// Returns keypoint.ErrInvalidName for a name outside the vocabulary.
func (c *Controller) SetActiveKeypoint(name string) error {
	i, ok := keypoint.CatalogIndex(name)
	if !ok {
		return keypoint.Validate(name)
	}
	c.activeKpt = i
	return nil
}

// RecordClick labels the active keypoint of the active person at pixel
// (x, y), then cycles the active keypoint to the next catalog entry.
// Coordinates are recorded unclamped; bounds checking against image
// dimensions is out of scope. Returns ErrNoCurrentImage before the
// first navigation and ErrNoActivePerson when no person is selected.
func (c *Controller) RecordClick(x, y int) error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	person := c.current.ActivePerson()
	if person == nil {
		return ErrNoActivePerson
	}
	if err := person.Set(c.ActiveKeypoint().Name, keypoint.Position{X: x, Y: y}); err != nil {
		return err
	}
	c.activeKpt = (c.activeKpt + 1) % len(keypoint.Catalog)
	return nil
}

// PopKeypoint steps the active keypoint back one catalog entry
// (stopping at the first) and removes that keypoint's label from the
// active person. Removing an unlabeled keypoint returns
// label.ErrNotLabeled; the selection still steps back, matching the
// undo gesture of clicking one too far.
func (c *Controller) PopKeypoint() error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	person := c.current.ActivePerson()
	if person == nil {
		return ErrNoActivePerson
	}
	prev := c.activeKpt - 1
	if prev < 0 {
		prev = 0
	}
	c.activeKpt = prev
	return person.Remove(keypoint.Catalog[prev].Name)
}

// AddPerson appends a new empty person to the current image, makes it
// active, resets the active keypoint to the first catalog entry, and
// returns the new person's index.
func (c *Controller) AddPerson() (int, error) {
	if c.current == nil {
		return 0, ErrNoCurrentImage
	}
	idx := c.current.AddPerson()
	c.activeKpt = 0
	return idx, nil
}

// DeletePerson removes the person at index from the current image.
func (c *Controller) DeletePerson(index int) error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	return c.current.DeletePerson(index)
}

// SelectPerson makes the person at index active.
func (c *Controller) SelectPerson(index int) error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	return c.current.SetActive(index)
}

// ClearActivePerson removes every label from the active person and
// resets the active keypoint to the first catalog entry.
func (c *Controller) ClearActivePerson() error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	person := c.current.ActivePerson()
	if person == nil {
		return ErrNoActivePerson
	}
	person.Clear()
	c.activeKpt = 0
	return nil
}
