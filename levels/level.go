package levels

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/jumpctl/physics"
)

const (
	spawnGroup   = "PlayerSpawn"
	defaultLayer = "ground"
)

// Rect is a solid region in world pixels, top-left anchored.
type Rect struct {
	X, Y, W, H float64
	Layer      string
}

// Level is the collision geometry and spawn point parsed from a TMX map.
type Level struct {
	Name   string
	Width  float64
	Height float64
	Solids []Rect
	SpawnX float64
	SpawnY float64
}

// Load reads a level by name from disk or the embedded set.
func Load(name string) (*Level, error) {
	fsys, path := Source(name)
	return LoadFS(fsys, path)
}

// LoadFS parses a TMX file. Every object group except PlayerSpawn is treated
// as solid geometry. An object's "layer" property names its collision layer
// and must be known; without one the group name is used (plural accepted),
// then ground.
func LoadFS(fsys fs.FS, path string) (*Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}

	lvl := &Level{
		Name:   strings.TrimSuffix(path, ".tmx"),
		Width:  float64(m.Width * m.TileWidth),
		Height: float64(m.Height * m.TileHeight),
	}

	spawned := false
	for _, og := range m.ObjectGroups {
		if og.Name == spawnGroup {
			if len(og.Objects) > 0 {
				lvl.SpawnX, lvl.SpawnY = og.Objects[0].X, og.Objects[0].Y
				spawned = true
			}
			continue
		}
		for _, o := range og.Objects {
			if o.Width <= 0 || o.Height <= 0 {
				continue
			}
			layer, err := objectLayer(og.Name, o.Properties.GetString("layer"))
			if err != nil {
				return nil, fmt.Errorf("levels: %s object %d: %w", path, o.ID, err)
			}
			lvl.Solids = append(lvl.Solids, Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height, Layer: layer})
		}
	}

	if len(lvl.Solids) == 0 {
		return nil, fmt.Errorf("levels: %s has no collision objects", path)
	}
	if !spawned {
		lvl.SpawnX, lvl.SpawnY = lvl.Width/2, 0
	}
	return lvl, nil
}

func objectLayer(group, explicit string) (string, error) {
	if explicit != "" {
		if _, err := physics.LayerByName(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	name := strings.ToLower(group)
	for _, candidate := range []string{name, strings.TrimSuffix(name, "s")} {
		if _, err := physics.LayerByName(candidate); err == nil {
			return candidate, nil
		}
	}
	return defaultLayer, nil
}

// Build adds the level's solids and outer bounds to a physics world.
func (l *Level) Build(w *physics.World) error {
	for _, r := range l.Solids {
		bit, err := physics.LayerByName(r.Layer)
		if err != nil {
			return fmt.Errorf("levels: build %s: %w", l.Name, err)
		}
		w.AddStaticBox(r.X, r.Y, r.W, r.H, bit)
	}
	w.AddBounds(l.Width, l.Height)
	return nil
}
