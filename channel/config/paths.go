package config

import "path/filepath"

// PathResolver anchors the relative paths a scenario file may carry, the
// input wav and the sound speed profile file, at the scenario's own
// directory, so a scenario can be run from anywhere.
type PathResolver struct {
	baseDir string
}

func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath joins a relative path onto the scenario directory. Absolute
// paths pass through untouched.
func (pr *PathResolver) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}
