package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/giantswarm/launchpad/internal/provision"
	"github.com/giantswarm/launchpad/internal/sentinel"
)

// ErrManifestNotFound is returned when no template exists for the requested
// kind under the application's template base path. It is fatal to the
// current launch.
const ErrManifestNotFound = sentinel.Error("manifest template not found")

// TemplateStore supplies the raw template text for one resource kind of one
// application. Implementations report a missing template via
// ErrManifestNotFound.
type TemplateStore interface {
	Template(base string, kind provision.Kind) ([]byte, error)
}

// Compile-time interface satisfaction check.
var _ TemplateStore = (*FSStore)(nil)

// FSStore reads templates from a file system, typically the catalog's
// embedded manifests. The template for a kind lives at
// <base>/<kind>.yaml.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store reading from fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Template returns the raw template for the given base path and kind.
func (s *FSStore) Template(base string, kind provision.Kind) ([]byte, error) {
	name := path.Join(base, kind.String()+".yaml")
	raw, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("template %s: %w", name, ErrManifestNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return raw, nil
}
