// Package workspace tracks the project folders an editing surface is
// attached to. A surface with no workspace has no actionable project
// commands.
package workspace

import (
	"errors"
	"path/filepath"
	"sync"
)

// Common errors.
var (
	ErrNoFolders      = errors.New("workspace has no folders")
	ErrFolderNotFound = errors.New("folder not found in workspace")
	ErrFolderExists   = errors.New("folder already in workspace")
)

// Folder represents a single folder in the workspace.
type Folder struct {
	// Path is the local file system path.
	Path string
	// Name is the display name for the folder.
	Name string
}

// Workspace represents a collection of folders being edited.
type Workspace struct {
	mu      sync.RWMutex
	folders []Folder
}

// New creates a new empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// NewFromPath creates a workspace with a single root folder.
func NewFromPath(path string) (*Workspace, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	ws := New()
	ws.folders = append(ws.folders, Folder{
		Path: absPath,
		Name: filepath.Base(absPath),
	})
	return ws, nil
}

// AddFolder adds a folder to the workspace.
func (w *Workspace) AddFolder(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, f := range w.folders {
		if f.Path == absPath {
			return ErrFolderExists
		}
	}
	w.folders = append(w.folders, Folder{
		Path: absPath,
		Name: filepath.Base(absPath),
	})
	return nil
}

// RemoveFolder removes a folder by path.
func (w *Workspace) RemoveFolder(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for i, f := range w.folders {
		if f.Path == absPath {
			w.folders = append(w.folders[:i], w.folders[i+1:]...)
			return nil
		}
	}
	return ErrFolderNotFound
}

// Folders returns a copy of the workspace folders.
func (w *Workspace) Folders() []Folder {
	w.mu.RLock()
	defer w.mu.RUnlock()
	folders := make([]Folder, len(w.folders))
	copy(folders, w.folders)
	return folders
}

// Root returns the first folder, or an error if the workspace is empty.
func (w *Workspace) Root() (Folder, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.folders) == 0 {
		return Folder{}, ErrNoFolders
	}
	return w.folders[0], nil
}

// IsEmpty reports whether the workspace has no folders.
func (w *Workspace) IsEmpty() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.folders) == 0
}
