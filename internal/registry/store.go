package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/lo"

	"github.com/tellnet/tellnet/internal/platform"
	"github.com/tellnet/tellnet/internal/schema"
)

const (
	filePerm os.FileMode = 0600
	dirPerm  os.FileMode = 0700
)

// Load reads the registry stored at path. A missing file yields an empty
// registry. So does an unreadable file or one that is not a JSON array, with
// a warning. Records that match the file format only loosely are kept so
// their credentials survive the next write; a record that cannot be decoded
// at all is skipped. Duplicate ids keep their first record.
func Load(path string, log *slog.Logger) *Registry {
	r := New(path, log)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return r
	}
	if err != nil {
		log.Warn("networks file unreadable, starting empty", "path", path, "error", err)
		return r
	}

	networks, err := decode(data, path, log)
	if err != nil {
		log.Warn("networks file unreadable, starting empty", "path", path, "error", err)
		return r
	}

	unique := lo.UniqBy(networks, func(n Network) string { return n.NetworkID })
	if len(unique) != len(networks) {
		log.Warn("networks file lists a network more than once, keeping the first entry",
			"path", path, "dropped", len(networks)-len(unique))
	}
	r.networks = unique
	return r
}

func decode(data []byte, path string, log *slog.Logger) ([]Network, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding networks: %w", err)
	}

	if result, err := schema.Validate(schema.Networks, data); err == nil && !result.Valid {
		log.Warn("networks file has incomplete records, keeping them as stored",
			"path", path, "issues", result.Summary())
	}

	networks := make([]Network, 0, len(records))
	for i, raw := range records {
		var n Network
		if err := json.Unmarshal(raw, &n); err != nil {
			log.Warn("skipping undecodable network record", "path", path, "index", i, "error", err)
			continue
		}
		networks = append(networks, n)
	}
	return networks, nil
}

// Persist rewrites the whole file from memory. The write goes through a
// temporary file and a rename, so the file on disk is either the previous
// list or the new one.
func (r *Registry) Persist() error {
	networks := r.networks
	if networks == nil {
		networks = []Network{}
	}

	data, err := json.MarshalIndent(networks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling networks: %w", err)
	}
	data = append(data, '\n')

	if err := platform.WriteFileAtomic(r.path, data, filePerm, dirPerm); err != nil {
		return fmt.Errorf("writing networks file: %w", err)
	}
	return nil
}

// persistOrReport persists and logs a failure instead of returning it. The
// in-memory registry stays ahead of the file until the next successful write.
func (r *Registry) persistOrReport() {
	if err := r.Persist(); err != nil {
		r.log.Error("error writing file", "path", r.path, "error", err)
	}
}
