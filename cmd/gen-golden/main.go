package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/escp"
)

// Regenerates testdata/<name>.<profile>.golden from testdata/<name>.md for
// every built-in profile. Run from the repository root after changing the
// transpiler or the sample inputs.
func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		for _, name := range escp.AvailableProfiles() {
			profile, ok := escp.ProfileByName(name)
			if !ok {
				fatalf("profile %q missing", name)
			}
			out := escp.TranspileProfile(string(src), profile)
			goldenPath := goldenPath(path, name)
			if err := os.WriteFile(goldenPath, out, 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

func goldenPath(mdPath, profile string) string {
	return strings.TrimSuffix(mdPath, ".md") + "." + profile + ".golden"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
