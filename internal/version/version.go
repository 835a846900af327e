// Package version reports build information for autolist and records which
// version last ran in a workspace.
package version

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Info contains version information about autolist.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates a new Info from the build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns a formatted version string.
func (i *Info) String() string {
	return fmt.Sprintf("autolist %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

// FullString returns a detailed version string.
func (i *Info) FullString() string {
	return fmt.Sprintf(`autolist %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// WorkspaceVersion stores version info for a workspace.
type WorkspaceVersion struct {
	Version       string    `json:"version"`
	InitializedAt time.Time `json:"initialized_at"`
	LastRunAt     time.Time `json:"last_run_at,omitempty"`
}

// FilePath is the path to the version file within a workspace.
const FilePath = ".autolist/version.json"

// Load reads the workspace version from .autolist/version.json.
func Load(dir string) (*WorkspaceVersion, error) {
	data, err := os.ReadFile(filepath.Join(dir, FilePath))
	if err != nil {
		return nil, err
	}

	var wv WorkspaceVersion
	if err := json.Unmarshal(data, &wv); err != nil {
		return nil, fmt.Errorf("failed to parse version.json: %w", err)
	}
	return &wv, nil
}

// Save writes the workspace version, creating .autolist if needed.
func Save(dir string, wv *WorkspaceVersion) error {
	path := filepath.Join(dir, FilePath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(wv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal version.json: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// MarkInitialized records that the workspace was initialized by version.
func MarkInitialized(dir, version string) error {
	return Save(dir, &WorkspaceVersion{
		Version:       version,
		InitializedAt: time.Now(),
	})
}

// UpdateLastRun updates the last_run_at timestamp.
func UpdateLastRun(dir, version string) error {
	wv, err := Load(dir)
	if err != nil {
		wv = &WorkspaceVersion{
			Version:       version,
			InitializedAt: time.Now(),
		}
	}
	wv.LastRunAt = time.Now()
	wv.Version = version
	return Save(dir, wv)
}
