package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, DebugFilename(filename)), content, filePerm)
}

// DebugFilename returns the sidecar name used for filename. The leading
// underscore keeps the go command from compiling it.
func DebugFilename(filename string) string {
	return "_" + strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
