package engine

import (
	"os"
	"path/filepath"
)

// WriteFrame writes <base>.png and, when raw is set, <base>.raw. Each
// file is written to a temporary name and renamed into place so readers
// never see a partial image. It returns the paths written.
func WriteFrame(f *Frame, base string, raw bool) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return nil, err
	}
	outputs := []struct {
		path string
		data []byte
	}{{base + ".png", f.PNG}}
	if raw {
		outputs = append(outputs, struct {
			path string
			data []byte
		}{base + ".raw", f.Raw})
	}
	var written []string
	for _, o := range outputs {
		if err := writeAtomic(o.path, o.data); err != nil {
			return written, err
		}
		written = append(written, o.path)
	}
	return written, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
