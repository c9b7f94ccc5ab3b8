package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golflab/poselabel/internal/config"
	"github.com/golflab/poselabel/pkg/render"
	"github.com/golflab/poselabel/pkg/session"
)

const usage = `commands:
  next | back | goto N     navigate (flushes current labels)
  skip                     jump to the next unlabeled image
  kpt NAME                 select the keypoint the next click labels
  click X Y                record a click for the selected keypoint
  pop                      remove the most recently selected keypoint
  add | del N | person N   manage persons on the current image
  clear                    clear all labels of the active person
  stache                   archive the current image
  save                     persist the dataset
  json N                   print the export record for person N
  render PATH              write an annotated overlay image
  status | ls | help | quit`

func main() {
	var dir, configPath string

	flag.StringVar(&dir, "dir", "", "image directory to annotate")
	flag.StringVar(&configPath, "config", "", "config file path (optional)")
	flag.Parse()

	if dir == "" {
		log.Fatalf("usage: %s -dir images [-config config.json]", filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctrl, err := session.NewWithConfig(dir, session.Config{
		DatasetFile: cfg.Session.DatasetFile,
		ArchiveDir:  cfg.Session.ArchiveDir,
		Extensions:  cfg.Session.Extensions,
	})
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	renderer := render.NewWithConfig(render.Config{
		Radius:      cfg.Render.Radius,
		StrokeWidth: cfg.Render.StrokeWidth,
		Quality:     cfg.Render.Quality,
		Lossless:    cfg.Render.Lossless,
	})

	log.Printf("Loaded %d labeled images, %d images in working list", ctrl.Dataset().Len(), len(ctrl.Images()))
	if err := ctrl.Advance(1); err != nil {
		log.Fatalf("No images to annotate in %s", dir)
	}
	printStatus(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			break
		}
		if err := run(ctrl, renderer, cfg, dir, cmd, args); err != nil {
			log.Printf("%s: %v", cmd, err)
			continue
		}
		switch cmd {
		case "next", "back", "goto", "skip", "stache":
			printStatus(ctrl)
		}
	}
}

func run(ctrl *session.Controller, renderer *render.Renderer, cfg *config.Config, dir, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Println(usage)
		return nil
	case "ls":
		for i, name := range ctrl.Images() {
			marker := " "
			if i == ctrl.Cursor() {
				marker = "*"
			}
			labeled := ""
			if ctrl.Dataset().Contains(name) {
				labeled = " [labeled]"
			}
			fmt.Printf("%s %3d %s%s\n", marker, i, name, labeled)
		}
		return nil
	case "status":
		printStatus(ctrl)
		return nil
	case "next":
		return ctrl.Advance(1)
	case "back":
		return ctrl.Advance(-1)
	case "goto":
		i, err := intArg(args, 0)
		if err != nil {
			return err
		}
		return ctrl.GoTo(i)
	case "skip":
		return ctrl.AdvanceToNextUnlabeled()
	case "kpt":
		if len(args) < 1 {
			return fmt.Errorf("expected a keypoint name")
		}
		return ctrl.SetActiveKeypoint(args[0])
	case "click":
		x, err := intArg(args, 0)
		if err != nil {
			return err
		}
		y, err := intArg(args, 1)
		if err != nil {
			return err
		}
		name := ctrl.ActiveKeypoint().Name
		if err := ctrl.RecordClick(x, y); err != nil {
			return err
		}
		log.Printf("Labeled %s at (%d, %d), next keypoint: %s", name, x, y, ctrl.ActiveKeypoint().Name)
		return nil
	case "pop":
		return ctrl.PopKeypoint()
	case "add":
		idx, err := ctrl.AddPerson()
		if err != nil {
			return err
		}
		log.Printf("Added person %d", idx)
		return nil
	case "del":
		i, err := intArg(args, 0)
		if err != nil {
			return err
		}
		return ctrl.DeletePerson(i)
	case "person":
		i, err := intArg(args, 0)
		if err != nil {
			return err
		}
		return ctrl.SelectPerson(i)
	case "clear":
		return ctrl.ClearActivePerson()
	case "stache":
		return ctrl.ArchiveCurrent()
	case "save":
		if err := ctrl.Save(); err != nil {
			return err
		}
		log.Printf("Saved dataset with %d labeled images", ctrl.Dataset().Len())
		return nil
	case "json":
		i, err := intArg(args, 0)
		if err != nil {
			return err
		}
		rec, err := ctrl.ExportPerson(i)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	case "render":
		if len(args) < 1 {
			return fmt.Errorf("expected an output path")
		}
		name, ok := ctrl.Current()
		if !ok {
			return session.ErrNoCurrentImage
		}
		img, err := renderer.LoadImage(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		overlay := renderer.Annotate(img, ctrl.CurrentPersons())
		format := strings.TrimPrefix(filepath.Ext(args[0]), ".")
		if format == "" {
			format = cfg.Render.OverlayFormat
		}
		if err := renderer.SaveImage(overlay, args[0], format); err != nil {
			return err
		}
		log.Printf("Wrote %s", args[0])
		return nil
	default:
		return fmt.Errorf("unknown command (try help)")
	}
}

func intArg(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, errors.New("missing numeric argument")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[i])
	}
	return n, nil
}

func printStatus(ctrl *session.Controller) {
	name, ok := ctrl.Current()
	if !ok {
		log.Printf("No current image (%d in working list)", len(ctrl.Images()))
		return
	}
	persons := ctrl.CurrentPersons()
	labels := 0
	for _, p := range persons.Persons() {
		labels += p.Len()
	}
	log.Printf("[%d/%d] %s: %d person(s), %d label(s), next keypoint: %s",
		ctrl.Cursor()+1, len(ctrl.Images()), name, persons.Len(), labels, ctrl.ActiveKeypoint().Name)
}
