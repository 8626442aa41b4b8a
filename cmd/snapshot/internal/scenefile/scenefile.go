// Package scenefile loads yaml scene descriptions into scene trees.
package scenefile

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/scene"
)

// File is the top-level yaml document.
type File struct {
	Scene Scene `yaml:"scene"`
}

// Scene describes one render: its size, ratio, background, and root node.
type Scene struct {
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	PixelRatio float64  `yaml:"pixel_ratio"`
	Background string   `yaml:"background"`
	Root       NodeSpec `yaml:"root"`
}

// NodeSpec is one node in the yaml tree. Exactly one of the fields should
// be set.
type NodeSpec struct {
	Box    *BoxSpec   `yaml:"box"`
	Image  *ImageSpec `yaml:"image"`
	Column []NodeSpec `yaml:"column"`
	Row    []NodeSpec `yaml:"row"`
}

// BoxSpec describes a decorated box.
type BoxSpec struct {
	Color        string    `yaml:"color"`
	BorderColor  string    `yaml:"border_color"`
	BorderWidth  float64   `yaml:"border_width"`
	BorderRadius float64   `yaml:"border_radius"`
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	Padding      float64   `yaml:"padding"`
	Child        *NodeSpec `yaml:"child"`
}

// ImageSpec describes an image loaded from disk.
type ImageSpec struct {
	Path   string  `yaml:"path"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Fit    string  `yaml:"fit"`
}

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Scene.Width <= 0 || f.Scene.Height <= 0 {
		return nil, fmt.Errorf("%s: scene width and height must be positive", path)
	}
	return &f, nil
}

// BackgroundColor parses the scene background, defaulting to transparent.
func (s *Scene) BackgroundColor() (graphics.Color, error) {
	if s.Background == "" {
		return graphics.ColorTransparent, nil
	}
	return parseColor(s.Background)
}

// Build converts the yaml tree into scene nodes. Image paths resolve
// relative to baseDir.
func (n *NodeSpec) Build(baseDir string) (scene.Node, error) {
	set := 0
	if n.Box != nil {
		set++
	}
	if n.Image != nil {
		set++
	}
	if len(n.Column) > 0 {
		set++
	}
	if len(n.Row) > 0 {
		set++
	}
	if set == 0 {
		return nil, fmt.Errorf("node has no content: set one of box, image, column, row")
	}
	if set > 1 {
		return nil, fmt.Errorf("node has multiple contents: set only one of box, image, column, row")
	}

	switch {
	case n.Box != nil:
		return n.Box.build(baseDir)
	case n.Image != nil:
		return n.Image.build(baseDir)
	case len(n.Column) > 0:
		children, err := buildAll(n.Column, baseDir)
		if err != nil {
			return nil, err
		}
		return scene.Column(children...), nil
	default:
		children, err := buildAll(n.Row, baseDir)
		if err != nil {
			return nil, err
		}
		return scene.Row(children...), nil
	}
}

func buildAll(specs []NodeSpec, baseDir string) ([]scene.Node, error) {
	nodes := make([]scene.Node, 0, len(specs))
	for i := range specs {
		node, err := specs[i].Build(baseDir)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (b *BoxSpec) build(baseDir string) (scene.Node, error) {
	var deco scene.Decoration
	var err error
	if b.Color != "" {
		if deco.Color, err = parseColor(b.Color); err != nil {
			return nil, err
		}
	}
	if b.BorderColor != "" {
		if deco.BorderColor, err = parseColor(b.BorderColor); err != nil {
			return nil, err
		}
	}
	deco.BorderWidth = b.BorderWidth
	deco.BorderRadius = b.BorderRadius

	box := scene.NewBox(deco)
	box.Width = b.Width
	box.Height = b.Height
	box.Padding = b.Padding
	if b.Child != nil {
		child, err := b.Child.Build(baseDir)
		if err != nil {
			return nil, err
		}
		box.Child = child
	}
	return box, nil
}

func (i *ImageSpec) build(baseDir string) (scene.Node, error) {
	if i.Path == "" {
		return nil, fmt.Errorf("image node requires a path")
	}
	path := i.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	node := scene.NewImage(scene.StaticImage{Image: decoded})
	node.Width = i.Width
	node.Height = i.Height
	switch strings.ToLower(i.Fit) {
	case "", "contain":
		node.Fit = scene.ImageFitContain
	case "fill":
		node.Fit = scene.ImageFitFill
	case "cover":
		node.Fit = scene.ImageFitCover
	default:
		return nil, fmt.Errorf("unknown image fit %q (want contain, fill, or cover)", i.Fit)
	}
	return node, nil
}

// parseColor accepts "#RRGGBB" or "#AARRGGBB".
func parseColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return graphics.Color(0xFF000000 | uint32(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return graphics.Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB or #AARRGGBB", s)
	}
}
