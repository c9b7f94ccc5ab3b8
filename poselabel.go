// Package poselabel provides the annotation core for labeling human
// pose and golf-equipment keypoints on a directory of images.
//
// The package records user-supplied point annotations against a fixed
// 14-name keypoint vocabulary, keeps them consistent while navigating
// between images, lazily flushes edits into a JSON-persisted dataset,
// and exports COCO-style numeric arrays per labeled person.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/golflab/poselabel"
//	)
//
//	func main() {
//		// Open an annotation session over an image directory
//		app, err := poselabel.Open("./images")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Navigate to the first image
//		if err := app.Session.Advance(1); err != nil {
//			log.Fatal(err)
//		}
//
//		// Label the club head on the auto-created first person
//		app.Session.SetActiveKeypoint("clubhead")
//		app.Session.RecordClick(140, 260)
//
//		// Persist and export
//		if err := app.Session.Save(); err != nil {
//			log.Fatal(err)
//		}
//		rec, err := app.Session.ExportPerson(0)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("%s: v=%v\n", rec.ImageAssetPath, rec.Annotation.V)
//	}
//
// The package consists of four main components:
//
// 1. Keypoint (pkg/keypoint): the fixed vocabulary, its canonical export
// order and its display catalog
//
// 2. Label (pkg/label): per-person label sets and the per-image ordered
// PersonSet with its active-person selection
//
// 3. Dataset (pkg/dataset): the JSON-persisted mapping from image
// filename to labeled persons
//
// 4. Session (pkg/session): the workflow controller that owns the
// working image list, the cursor, flush-on-navigate, archival and export
//
// Overlay rendering of recorded labels lives in pkg/render; interactive
// widget wiring is deliberately outside the module.
package poselabel

import (
	"github.com/golflab/poselabel/pkg/render"
	"github.com/golflab/poselabel/pkg/session"
)

// Version of the poselabel library
const Version = "1.0.0"

// App bundles an annotation session with an overlay renderer.
type App struct {
	Session  *session.Controller
	Renderer *render.Renderer
}

// Open starts an annotation session over dir with default configuration.
func Open(dir string) (*App, error) {
	ctrl, err := session.New(dir)
	if err != nil {
		return nil, err
	}
	return &App{
		Session:  ctrl,
		Renderer: render.New(),
	}, nil
}

// OpenWithConfig starts an annotation session with custom session and
// render configuration.
func OpenWithConfig(dir string, sessionConfig session.Config, renderConfig render.Config) (*App, error) {
	ctrl, err := session.NewWithConfig(dir, sessionConfig)
	if err != nil {
		return nil, err
	}
	return &App{
		Session:  ctrl,
		Renderer: render.NewWithConfig(renderConfig),
	}, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
