package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Upload extensions the loader understands.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// FileInfo represents information about a discovered upload
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates seller order exports under the configured data directory.
type Discovery struct {
	dataDir string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(dataDir string) *Discovery {
	return &Discovery{dataDir: dataDir}
}

// DataDir returns the directory this discovery scans.
func (d *Discovery) DataDir() string {
	return d.dataDir
}

// ListUploads returns all supported order export files in the data
// directory, newest first.
func (d *Discovery) ListUploads() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", d.dataDir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(d.dataDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

// Resolve maps an upload name to its path inside the data directory.
// Only bare file names are accepted so callers cannot escape the
// directory with path traversal.
func (d *Discovery) Resolve(name string) (FileInfo, error) {
	if name == "" {
		return FileInfo{}, fmt.Errorf("empty file name")
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return FileInfo{}, fmt.Errorf("invalid file name %q", name)
	}
	if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
		return FileInfo{}, fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}

	path := filepath.Join(d.dataDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, fmt.Errorf("upload %s not found", name)
		}
		return FileInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("upload %s not found", name)
	}

	return FileInfo{
		Path:    path,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Latest returns the most recently modified upload.
func (d *Discovery) Latest() (FileInfo, bool, error) {
	files, err := d.ListUploads()
	if err != nil {
		return FileInfo{}, false, err
	}
	if len(files) == 0 {
		return FileInfo{}, false, nil
	}
	return files[0], true, nil
}
