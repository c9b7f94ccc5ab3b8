// Package session drives the annotation workflow: an ordered working
// list of image filenames, a cursor over it, lazy flushing of in-memory
// edits into the dataset on navigation, archival of images, and numeric
// export of a person's labels.
//
// Edits are cached in memory until an explicit Save; exiting without
// saving discards uncommitted edits. That is accepted behavior, not a
// defect.
package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golflab/poselabel/internal/utils"
	"github.com/golflab/poselabel/pkg/dataset"
	"github.com/golflab/poselabel/pkg/label"
	"github.com/golflab/poselabel/pkg/types"
)

var (
	// ErrNavigationOutOfRange is returned when a move would land the
	// cursor outside the working list. The cursor does not move.
	ErrNavigationOutOfRange = errors.New("navigation out of range")
	// ErrNothingToArchive is returned by ArchiveCurrent when no image
	// is current.
	ErrNothingToArchive = errors.New("nothing to archive")
	// ErrExhausted is returned when no unlabeled image remains ahead
	// of the cursor.
	ErrExhausted = errors.New("no unlabeled images remain")
	// ErrNoActivePerson is returned by label-editing events when the
	// current PersonSet has no active person. The event is a no-op.
	ErrNoActivePerson = errors.New("no active person")
	// ErrNoCurrentImage is returned by editing and export operations
	// invoked before the first navigation.
	ErrNoCurrentImage = errors.New("no current image")
)

// NoCursor is the cursor value before the first navigation.
const NoCursor = -1

// Mover relocates an image file into the archive. The default
// implementation moves files on the local filesystem; tests substitute
// their own.
type Mover interface {
	Move(src, dst string) error
}

// MoverFunc adapts a function to the Mover interface.
type MoverFunc func(src, dst string) error

// Move calls f.
func (f MoverFunc) Move(src, dst string) error {
	return f(src, dst)
}

// Config holds session configuration.
type Config struct {
	// DatasetFile is the dataset filename inside the image directory.
	DatasetFile string
	// ArchiveDir is the archive directory name inside the image directory.
	ArchiveDir string
	// Extensions are the admitted working-list file extensions.
	Extensions []string
	// Mover performs the archive file relocation.
	Mover Mover
}

// DefaultConfig returns the session defaults.
func DefaultConfig() Config {
	return Config{
		DatasetFile: "dataset.json",
		ArchiveDir:  "stached",
		Extensions:  utils.WorkingExtensions,
		Mover:       MoverFunc(utils.MoveFile),
	}
}

// Controller owns one annotation session over a single image directory.
// It is not safe for concurrent use; every operation runs to completion
// before the next is invoked.
type Controller struct {
	dir         string
	datasetPath string
	archiveDir  string
	mover       Mover

	images  []string
	cursor  int
	current *label.PersonSet

	ds *dataset.Dataset

	// activeKpt indexes keypoint.Catalog; it is the keypoint the next
	// recorded click labels, cycling forward after each click.
	activeKpt int
}

// New opens a session over dir with default configuration.
func New(dir string) (*Controller, error) {
	return NewWithConfig(dir, DefaultConfig())
}

// NewWithConfig opens a session over dir: scans the working image list,
// loads the persisted dataset (empty on first run), and creates the
// archive directory. The cursor starts unset; the first Advance
// establishes it at position 0.
func NewWithConfig(dir string, cfg Config) (*Controller, error) {
	if cfg.DatasetFile == "" {
		cfg.DatasetFile = "dataset.json"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "stached"
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = utils.WorkingExtensions
	}
	if cfg.Mover == nil {
		cfg.Mover = MoverFunc(utils.MoveFile)
	}

	images, err := utils.ListImages(dir, cfg.Extensions)
	if err != nil {
		return nil, err
	}

	archiveDir := filepath.Join(dir, cfg.ArchiveDir)
	if err := utils.EnsureDir(archiveDir); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	datasetPath := filepath.Join(dir, cfg.DatasetFile)
	ds, err := dataset.Load(datasetPath)
	if err != nil {
		return nil, err
	}

	return &Controller{
		dir:         dir,
		datasetPath: datasetPath,
		archiveDir:  archiveDir,
		mover:       cfg.Mover,
		images:      images,
		cursor:      NoCursor,
		ds:          ds,
	}, nil
}

// Images returns the current working image list in order.
func (c *Controller) Images() []string {
	return c.images
}

// Cursor returns the current position, or NoCursor before the first
// navigation.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Current returns the filename of the current image.
func (c *Controller) Current() (string, bool) {
	if c.cursor == NoCursor {
		return "", false
	}
	return c.images[c.cursor], true
}

// CurrentPersons returns the PersonSet being edited for the current
// image, or nil before the first navigation.
func (c *Controller) CurrentPersons() *label.PersonSet {
	return c.current
}

// Dataset exposes the in-memory dataset (current through the last
// flush, not the last Save).
func (c *Controller) Dataset() *dataset.Dataset {
	return c.ds
}

// flush writes the current image's labeled persons into the dataset.
// Persons with zero labels are dropped; if none carry a label the
// image key is not written at all, so empty sessions never pollute
// the dataset. Safe to repeat.
func (c *Controller) flush() {
	if c.cursor == NoCursor || c.current == nil {
		return
	}
	labeled := c.current.Labeled()
	if len(labeled) == 0 {
		return
	}
	cloned := make([]*label.Person, len(labeled))
	for i, p := range labeled {
		cloned[i] = p.Clone()
	}
	c.ds.Put(c.images[c.cursor], label.NewPersonSetWith(cloned))
}

// loadAt installs the PersonSet for the image at index i: a clone of
// the dataset entry when one exists, else a fresh set. The displayed
// image always ends up with at least one person to label into.
func (c *Controller) loadAt(i int) {
	if ps, ok := c.ds.Get(c.images[i]); ok {
		c.current = ps.Clone()
	} else {
		c.current = label.NewPersonSet()
	}
	if c.current.Len() == 0 {
		c.current.AddPerson()
	}
	c.activeKpt = 0
}

// Advance flushes the current image and moves the cursor by delta. An
// unset cursor establishes position 0 regardless of delta. Returns
// ErrNavigationOutOfRange without moving if the target falls outside
// the working list; the flush is never lost.
func (c *Controller) Advance(delta int) error {
	target := 0
	if c.cursor != NoCursor {
		target = c.cursor + delta
	}
	return c.GoTo(target)
}

// GoTo flushes the current image and moves the cursor to index. Same
// failure semantics as Advance.
func (c *Controller) GoTo(index int) error {
	c.flush()
	if index < 0 || index >= len(c.images) {
		return fmt.Errorf("%w: %d (have %d images)", ErrNavigationOutOfRange, index, len(c.images))
	}
	c.cursor = index
	c.loadAt(index)
	return nil
}

// AdvanceToNextUnlabeled scans forward from the cursor (exclusive) for
// the first image with no dataset entry and navigates there with the
// usual flush+load semantics. Returns ErrExhausted, cursor unchanged,
// when every remaining image is labeled.
func (c *Controller) AdvanceToNextUnlabeled() error {
	start := 0
	if c.cursor != NoCursor {
		start = c.cursor + 1
	}
	for i := start; i < len(c.images); i++ {
		if !c.ds.Contains(c.images[i]) {
			return c.GoTo(i)
		}
	}
	return ErrExhausted
}

// ArchiveCurrent removes the current image from the working list and
// the dataset, and relocates its file into the archive directory. Its
// in-memory labels are discarded, not flushed. The cursor re-resolves
// against the shrunk list and the image now at that position loads
// with the usual semantics. Returns ErrNothingToArchive when no image
// is current.
func (c *Controller) ArchiveCurrent() error {
	if c.cursor == NoCursor {
		return ErrNothingToArchive
	}

	name := c.images[c.cursor]
	src := filepath.Join(c.dir, name)
	dst := filepath.Join(c.archiveDir, name)
	if err := c.mover.Move(src, dst); err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}

	c.images = append(c.images[:c.cursor], c.images[c.cursor+1:]...)
	if err := c.ds.Remove(name); err != nil && !errors.Is(err, dataset.ErrKeyNotFound) {
		return err
	}
	c.current = nil

	if len(c.images) == 0 {
		c.cursor = NoCursor
		return nil
	}
	if c.cursor >= len(c.images) {
		c.cursor = len(c.images) - 1
	}
	c.loadAt(c.cursor)
	return nil
}

// Save flushes the current image and persists the dataset to disk.
func (c *Controller) Save() error {
	c.flush()
	return c.ds.Save(c.datasetPath)
}

// ExportPerson returns the export record for the person at index on
// the current image.
func (c *Controller) ExportPerson(index int) (types.ExportRecord, error) {
	name, ok := c.Current()
	if !ok {
		return types.ExportRecord{}, ErrNoCurrentImage
	}
	person, err := c.current.Person(index)
	if err != nil {
		return types.ExportRecord{}, err
	}
	v, xy := person.ExportArrays()
	return types.ExportRecord{
		ImageAssetPath: name,
		Annotation:     types.Annotation{V: v, XY: xy},
	}, nil
}
