// Package fileid computes the content-independent file identity digest
// described in spec: a 32-byte BLAKE3 digest of a workspace-relative path's
// UTF-8 bytes. It is deliberately the only place in the repository that
// imports a hashing library for this purpose, so the digest algorithm has
// exactly one home.
package fileid

import (
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

// Of returns the file_id for a workspace-relative path. The caller is
// responsible for having already stripped the workspace root prefix (see
// Workspace.Relativize); Of itself only normalizes path separators so the
// same logical path hashes identically on any host OS.
func Of(workspaceRelativePath string) symbol.FileID {
	normalized := filepath.ToSlash(workspaceRelativePath)
	sum := blake3.Sum256([]byte(normalized))
	return symbol.FileID(sum)
}

// Workspace captures the filesystem prefix stripped when computing a
// file_id: the filesystem path component of the workspace root URI, per
// spec §6.
type Workspace struct {
	root string
}

// NewWorkspace builds a Workspace rooted at root, which should already be a
// plain filesystem path (a transport layer is responsible for turning a
// file:// root URI into one before calling this).
func NewWorkspace(root string) Workspace {
	return Workspace{root: filepath.Clean(root)}
}

// Relativize strips the workspace root from an absolute path, returning a
// workspace-relative path suitable for Of. If path does not lie under the
// workspace root, it is returned unchanged (best effort, per an
// editor-protocol boundary that never fully guarantees containment).
func (w Workspace) Relativize(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// FileID is a convenience combining Relativize and Of.
func (w Workspace) FileID(path string) symbol.FileID {
	return Of(w.Relativize(path))
}

// PathParts splits a workspace-relative path into its segments, for the
// record's file_path_parts field.
func PathParts(workspaceRelativePath string) []string {
	normalized := filepath.ToSlash(filepath.Clean(workspaceRelativePath))
	if normalized == "." || normalized == "" {
		return nil
	}
	return strings.Split(normalized, "/")
}
