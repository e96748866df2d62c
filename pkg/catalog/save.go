package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/carvoy/locmerge/pkg/errors"
	"github.com/carvoy/locmerge/pkg/logging"
)

// filePermissions for the published catalog file.
const filePermissions = 0o644

// Save publishes the full catalog to path atomically. The catalog is
// serialized to a temporary sibling file, re-parsed to confirm structural
// validity and only then renamed over the previous catalog. On any failure
// the previous catalog is left untouched and the temp artifact removed.
func Save(path string, locations []Location) error {
	// Normalize nil slices so the wire format always carries arrays.
	for i := range locations {
		if locations[i].Aliases == nil {
			locations[i].Aliases = []string{}
		}
		if locations[i].Providers == nil {
			locations[i].Providers = []ProviderMapping{}
		}
		for j := range locations[i].Providers {
			if locations[i].Providers[j].Dropoffs == nil {
				locations[i].Providers[j].Dropoffs = []string{}
			}
		}
	}

	data, err := json.MarshalIndent(locations, "", "    ")
	if err != nil {
		return &errors.SerializationError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, filePermissions); err != nil {
		return errors.WrapIO("write", tmpPath, err)
	}

	// Re-parse the temp file before touching the live catalog. A truncated
	// or corrupt write must never be renamed into place.
	if _, err := Load(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return &errors.SerializationError{Path: path, Err: err}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("remove", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", tmpPath, err)
	}

	logging.Info().
		Str("path", path).
		Int("locations", len(locations)).
		Msg("Published unified location catalog")
	return nil
}

// Load reads and parses a catalog file.
func Load(path string) ([]Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var locations []Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return locations, nil
}
