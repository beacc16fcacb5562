// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polyrun/polyrun/internal/toolchain"
)

// workspace is the scratch directory of one Run call. It holds the source file
// for file delivery and the compiler artifact. The zero value means no directory.
type workspace struct {
	dir string
}

// newWorkspace creates a scratch directory under base (os.TempDir when empty)
// if spec needs one, and writes the source file for file delivery.
func newWorkspace(base string, spec toolchain.Spec, code string) (*workspace, error) {
	if !spec.NeedsWorkdir() {
		return &workspace{}, nil
	}
	dir, err := os.MkdirTemp(base, "polyrun-*")
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	ws := &workspace{dir: dir}
	if spec.Delivery == toolchain.DeliveryFile {
		if err := os.WriteFile(filepath.Join(dir, spec.SourceFile), []byte(code), 0o600); err != nil {
			ws.remove()
			return nil, fmt.Errorf("write source file: %w", err)
		}
	}
	return ws, nil
}

func (w *workspace) vars(spec toolchain.Spec, code string) toolchain.Vars {
	v := toolchain.Vars{Code: code, Workdir: w.dir}
	if w.dir == "" {
		return v
	}
	if spec.SourceFile != "" {
		v.Source = filepath.Join(w.dir, spec.SourceFile)
	}
	if spec.Artifact != "" {
		v.Artifact = filepath.Join(w.dir, spec.Artifact)
	}
	return v
}

func (w *workspace) remove() {
	if w.dir != "" {
		_ = os.RemoveAll(w.dir)
	}
}
