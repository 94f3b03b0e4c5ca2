// Package devices finds removable storage to copy lessons onto and watches
// for devices being plugged in or removed.
package devices

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"slices"

	"github.com/agentstation/lessonmap/pkg/errors"
)

// Device is a mounted removable volume.
type Device struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Provider enumerates the removable devices currently available.
type Provider interface {
	Removable(ctx context.Context) ([]Device, error)
}

// Compile-time interface checks.
var (
	_ Provider = (*MountScanner)(nil)
	_ Provider = Static{}
)

// MountScanner treats each writable directory directly below a mount root as
// a removable device, which is how desktop automounters expose USB sticks.
type MountScanner struct {
	Roots []string
}

// NewMountScanner scans roots, or the platform defaults when none are given.
func NewMountScanner(roots ...string) *MountScanner {
	if len(roots) == 0 {
		roots = DefaultMountRoots()
	}
	return &MountScanner{Roots: roots}
}

// DefaultMountRoots returns /media/$USER, /run/media/$USER and /Volumes.
func DefaultMountRoots() []string {
	name := os.Getenv("USER")
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	roots := []string{"/Volumes"}
	if name != "" {
		roots = append([]string{filepath.Join("/media", name), filepath.Join("/run/media", name)}, roots...)
	}
	return roots
}

// Removable lists devices sorted by path. Missing roots are ignored.
func (s *MountScanner) Removable(ctx context.Context) ([]Device, error) {
	var found []Device
	for _, root := range s.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				continue
			}
			return nil, errors.WrapIO("read", root, err)
		}
		for _, entry := range entries {
			// Symlinks such as /Volumes/Macintosh HD point at fixed disks.
			if entry.Type()&os.ModeSymlink != 0 || !entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if !writable(path) {
				continue
			}
			found = append(found, Device{Name: entry.Name(), Path: path})
		}
	}
	slices.SortFunc(found, func(a, b Device) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	return found, nil
}

// Static is a fixed destination directory, for configured devices and tests.
type Static struct {
	Path string
}

// Removable returns the directory when it exists.
func (s Static) Removable(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, nil
	}
	info, err := os.Stat(s.Path)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	return []Device{{Name: filepath.Base(s.Path), Path: s.Path}}, nil
}

// First returns the first available device, or ErrNoDevice.
func First(ctx context.Context, p Provider) (Device, error) {
	devices, err := p.Removable(ctx)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, errors.ErrNoDevice
	}
	return devices[0], nil
}

func writable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && info.Mode().Perm()&0o200 != 0
}
