package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Assets holds the controller yaml and input scripts shipped with the binary.
// Files under ./prefabs on disk shadow the embedded copies so edits made
// while the game runs are picked up on reload.
//
//go:embed *.yaml scripts/*.tengo
var Assets embed.FS

// Load reads a controller yaml file.
func Load(name string) ([]byte, error) {
	return readAsset(Assets, cleanPrefabPath(name))
}

// LoadScript reads an input script; the .tengo suffix is optional.
func LoadScript(name string) ([]byte, error) {
	return readAsset(Assets, cleanScriptPath(name))
}

func readAsset(embedded fs.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, rel)
}

func cleanPrefabPath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func cleanScriptPath(name string) string {
	base := path.Base(filepath.ToSlash(name))
	if path.Ext(base) != ".tengo" {
		base += ".tengo"
	}
	return path.Join("scripts", base)
}
