package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// pendingFile is written beside its target and renamed into place on commit.
type pendingFile struct {
	path string
	file *os.File
	done bool
}

func createPending(path string) (*pendingFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output for %s: %w", path, err)
	}
	return &pendingFile{path: path, file: f}, nil
}

func (p *pendingFile) commit() error {
	if p.done {
		return fmt.Errorf("output %s already closed", p.path)
	}
	p.done = true
	if err := p.file.Close(); err != nil {
		os.Remove(p.file.Name())
		return err
	}
	if err := os.Rename(p.file.Name(), p.path); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("failed to move output into %s: %w", p.path, err)
	}
	return nil
}

func (p *pendingFile) discard() error {
	if p.done {
		return nil
	}
	p.done = true
	p.file.Close()
	return os.Remove(p.file.Name())
}
