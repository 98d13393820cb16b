package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DiskRoot is the directory, relative to the working directory, whose files
// override the embedded prefabs.
const DiskRoot = "prefabs"

//go:embed *.yaml scenes/*.yaml
var PrefabsFS embed.FS

// Load returns the prefab or scene file called name. A copy under DiskRoot
// wins over the embedded one so edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(filepath.Join(DiskRoot, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// SceneNames lists the embedded scenes by name, sorted.
func SceneNames() []string {
	files, _ := fs.Glob(PrefabsFS, "scenes/*.yaml")
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// HasDiskRoot reports whether DiskRoot exists and can be watched.
func HasDiskRoot() bool {
	info, err := os.Stat(DiskRoot)
	return err == nil && info.IsDir()
}

func cleanPrefabPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, DiskRoot+"/"); ok {
		return after
	}
	return s
}
