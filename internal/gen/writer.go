package gen

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteReport lists what WriteFiles did, by artifact path.
type WriteReport struct {
	Written   []string
	Unchanged []string
}

// WriteFiles writes artifacts to their directories. Each file is replaced
// atomically; files whose content is already up to date are left untouched.
func WriteFiles(artifacts []Artifact) (WriteReport, error) {
	var report WriteReport

	for _, a := range artifacts {
		changed, err := writeFile(a)
		if err != nil {
			return report, err
		}

		if changed {
			report.Written = append(report.Written, a.Path())
		} else {
			report.Unchanged = append(report.Unchanged, a.Path())
		}
	}

	return report, nil
}

// Stale reports whether the file of a is missing or differs from a.
func Stale(a Artifact) (bool, error) {
	current, err := os.ReadFile(a.Path())
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, errors.Wrapf(err, "reading %s", a.Path())
	}

	return !bytes.Equal(current, a.Content), nil
}

func writeFile(a Artifact) (bool, error) {
	stale, err := Stale(a)
	if err != nil || !stale {
		return false, err
	}

	if err := os.MkdirAll(a.Dir, dirPerm); err != nil {
		return false, errors.Wrap(err, "creating output directory")
	}

	// The temp file starts with a dot so the go command ignores it.
	tmp, err := os.CreateTemp(a.Dir, "."+a.Filename+".*.tmp")
	if err != nil {
		return false, errors.Wrapf(err, "writing file %s", a.Filename)
	}

	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(a.Content); err != nil {
		_ = tmp.Close()
		return false, errors.Wrapf(err, "writing file %s", a.Filename)
	}

	if err := tmp.Close(); err != nil {
		return false, errors.Wrapf(err, "writing file %s", a.Filename)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return false, errors.Wrapf(err, "writing file %s", a.Filename)
	}

	if err := os.Rename(tmp.Name(), a.Path()); err != nil {
		return false, errors.Wrapf(err, "replacing %s", a.Path())
	}

	committed = true

	return true, nil
}
