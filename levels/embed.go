package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.tmx
var LevelsFS embed.FS

// Source returns the filesystem to load name from: the on-disk levels/
// directory when the file exists there, the embedded copy otherwise.
func Source(name string) (fs.FS, string) {
	clean := cleanLevelPath(name)
	if _, err := os.Stat(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return os.DirFS("levels"), clean
	}
	return LevelsFS, clean
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".tmx") {
		s += ".tmx"
	}
	return s
}
