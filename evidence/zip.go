package evidence

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// manifestFileName is the name of the manifest inside the audit package.
const manifestFileName = "manifest.json"

// WritePackage bundles the sealed artifacts and their manifest into a single
// ZIP file at zipPath. Only artifacts listed in the manifest are included;
// artifacts that were skipped during sealing are absent from both.
func WritePackage(manifest *Manifest, artifacts []Artifact, zipPath string) error {
	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return fmt.Errorf("creating package directory: %w", err)
	}

	pathsByName := make(map[string]string, len(artifacts))
	for _, artifact := range artifacts {
		pathsByName[artifact.Name] = artifact.Path
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating package: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	for _, entry := range manifest.Artifacts {
		path, ok := pathsByName[entry.File]
		if !ok {
			return fmt.Errorf("manifest entry %q has no source path", entry.File)
		}
		if err := addFile(zw, entry.File, path); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	w, err := zw.Create(manifestFileName)
	if err != nil {
		return fmt.Errorf("adding manifest: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing package: %w", err)
	}
	return out.Close()
}

// addFile copies one artifact into the archive under name.
func addFile(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding artifact %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying artifact %s: %w", name, err)
	}
	return nil
}
