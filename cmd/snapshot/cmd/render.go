package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/snapshot/cmd/snapshot/internal/scenefile"
	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/render"
	"github.com/go-drift/snapshot/pkg/renderer"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a yaml scene description to a PNG file",
		Long: `Render a scene described in yaml to a PNG file.

The scene file names a logical size, an optional pixel ratio and
background, and a tree of boxes, images, rows, and columns. Renderer
options (cache bounds, image-settle delays) are read from snapshot.yaml
next to the scene file when present.

Example scene file:

  scene:
    width: 64
    height: 64
    pixel_ratio: 2.0
    root:
      box:
        color: "#3366FF"
        border_radius: 8
        padding: 6
        child:
          image: {path: pin.png, fit: contain}`,
		Usage: "snapshot render -scene FILE -o FILE [-scale N] [-wait-images]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	scenePath := fs.String("scene", "", "scene yaml file (required)")
	outPath := fs.String("o", "", "output PNG file (required)")
	scale := fs.Float64("scale", 0, "pixel ratio override")
	waitImages := fs.Bool("wait-images", false, "wait for async images to settle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenePath == "" || *outPath == "" {
		return fmt.Errorf("render requires -scene and -o")
	}

	file, err := scenefile.Load(*scenePath)
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(*scenePath)
	root, err := file.Scene.Root.Build(baseDir)
	if err != nil {
		return err
	}
	background, err := file.Scene.BackgroundColor()
	if err != nil {
		return err
	}

	opts, err := renderer.LoadOptions(filepath.Join(baseDir, "snapshot.yaml"))
	if err != nil {
		return err
	}

	ratio := file.Scene.PixelRatio
	if *scale > 0 {
		ratio = *scale
	}
	surface := render.NewSurface(ratio).WithBackground(background)

	r, err := renderer.New[string](render.NewRasterizer(surface), opts)
	if err != nil {
		return err
	}
	ic, err := r.Render(context.Background(), renderer.Request[string]{
		Content: root,
		LogicalSize: graphics.Size{
			Width:  file.Scene.Width,
			Height: file.Scene.Height,
		},
		WaitForImages: *waitImages,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*outPath, ic.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outPath, err)
	}
	fmt.Printf("Rendered %s (%gx%g @%gx, %d bytes) -> %s\n",
		*scenePath, ic.LogicalSize().Width, ic.LogicalSize().Height,
		ic.PixelRatio(), ic.SizeInBytes(), *outPath)
	return nil
}
