package userdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tellnet/tellnet/internal/platform"
	"github.com/tellnet/tellnet/internal/schema"
)

// CheckUserdata validates the tellnet home directory, its files, and their
// permissions. When fix is true, it repairs what it safely can: missing
// directory and loose permissions. File contents are never rewritten here.
// It returns the number of problems found (fixed ones included).
func CheckUserdata(w io.Writer, fix bool) (int, error) {
	root, err := GetRoot()
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "Userdata check:")

	if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		if fix {
			if mkErr := os.MkdirAll(root, DirPermSecure); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", root, mkErr)
				return 1, nil
			}
			fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", root, DirPermSecure)
		} else {
			fmt.Fprintln(w, "         Run any command, or doctor --fix, to create it")
		}
		return 1, nil
	}

	problems := checkPerm(w, root, DirPermSecure, fix)

	configPath := filepath.Join(root, ConfigFile)
	if n := checkDocument(w, configPath, schema.Config, true); n > 0 {
		problems += n
	} else {
		problems += checkEndpointScheme(w, configPath)
	}
	if _, err := os.Stat(configPath); err == nil {
		problems += checkPerm(w, configPath, FilePermSecure, fix)
	}

	networksPath := filepath.Join(root, NetworksFile)
	if n := checkDocument(w, networksPath, schema.Networks, false); n > 0 {
		problems += n
	} else if _, err := os.Stat(networksPath); err == nil {
		problems += checkUniqueNetworks(w, networksPath)
		problems += checkPerm(w, networksPath, FilePermSecure, fix)
	}

	return problems, nil
}

func checkPerm(w io.Writer, path string, expectedPerm os.FileMode, fix bool) int {
	actualPerm, err := platform.Perm(path, expectedPerm)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}

	if actualPerm == expectedPerm {
		fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, actualPerm)
		return 0
	}

	fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, actualPerm, expectedPerm)
	if fix {
		if chErr := platform.Chmod(path, expectedPerm); chErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
			return 1
		}
		fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, expectedPerm)
	}
	return 1
}

// checkDocument validates a file against its schema. A missing file is a
// problem only when required is set.
func checkDocument(w io.Writer, path string, doc schema.Document, required bool) int {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if required {
			fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
			return 1
		}
		fmt.Fprintf(w, "  [ OK ] %s not created yet\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}

	result, err := schema.Validate(doc, data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !result.Valid {
		fmt.Fprintf(w, "  [FAIL] %s is invalid\n", path)
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "         %s\n", issue)
		}
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return 0
}

// checkEndpointScheme flags an endpoint without a "scheme://" prefix. Such a
// config still works for requests the HTTP client can resolve, but share
// links cannot be built from it.
func checkEndpointScheme(w io.Writer, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var cfg struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0
	}
	if strings.Count(cfg.Endpoint, "://") == 1 {
		return 0
	}
	fmt.Fprintf(w, "  [WARN] %s: endpoint %q has no scheme, share links will fail\n", path, cfg.Endpoint)
	return 1
}

func checkUniqueNetworks(w io.Writer, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var records []struct {
		NetworkID string `json:"network_id"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return 0
	}

	seen := make(map[string]bool, len(records))
	problems := 0
	for _, r := range records {
		if seen[r.NetworkID] {
			fmt.Fprintf(w, "  [WARN] network %s is listed more than once; only the first entry is used\n", r.NetworkID)
			problems++
		}
		seen[r.NetworkID] = true
	}
	if problems == 0 {
		fmt.Fprintf(w, "  [ OK ] %d networks, ids unique\n", len(records))
	}
	return problems
}
