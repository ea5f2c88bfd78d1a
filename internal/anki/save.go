package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// Checksum computes the duplicate-detection checksum Anki stores for a sort
// field: the first 8 hex digits of the SHA-1 of the field without markup.
func Checksum(sortField string) int64 {
	sum := sha1.Sum([]byte(htmlTagRe.ReplaceAllString(sortField, "")))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}

// SaveAs writes pending changes to the collection and zips the package to
// outputPath.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.writeModels(); err != nil {
		return err
	}
	if err := p.writeNotes(); err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := p.zipInto(zw); err != nil {
		zw.Close()
		return fmt.Errorf("creating zip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}
	return nil
}

func (p *Package) zipInto(zw *zip.Writer) error {
	return filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if strings.HasSuffix(path, "-wal") || strings.HasSuffix(path, "-shm") || strings.HasSuffix(path, "-journal") {
			return nil
		}

		rel, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
}

// marshalFields encodes the fields of a note type, keeping every key Anki
// wrote that this package does not model.
func marshalFields(fields []Field) (json.RawMessage, error) {
	out := make([]map[string]json.RawMessage, len(fields))
	for i, f := range fields {
		m := make(map[string]json.RawMessage, len(f.raw)+4)
		for k, v := range f.raw {
			m[k] = v
		}
		known, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		var knownMap map[string]json.RawMessage
		if err := json.Unmarshal(known, &knownMap); err != nil {
			return nil, err
		}
		for k, v := range knownMap {
			m[k] = v
		}
		out[i] = m
	}
	return json.Marshal(out)
}

func (p *Package) writeModels() error {
	changed := false
	models := make(map[string]map[string]json.RawMessage, len(p.Models))
	for id, model := range p.Models {
		raw := make(map[string]json.RawMessage, len(model.raw))
		for k, v := range model.raw {
			raw[k] = v
		}
		if model.changed {
			flds, err := marshalFields(model.Fields)
			if err != nil {
				return fmt.Errorf("marshaling fields of %q: %w", model.Name, err)
			}
			raw["flds"] = flds
			raw["mod"] = json.RawMessage(strconv.FormatInt(time.Now().Unix(), 10))
			changed = true
		}
		models[strconv.FormatInt(id, 10)] = raw
	}
	if !changed {
		return nil
	}

	data, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}
	if _, err := p.db.Exec("UPDATE col SET models = ?", string(data)); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}
	for _, model := range p.Models {
		model.changed = false
	}
	return nil
}

func (p *Package) writeNotes() error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE notes SET mod = ?, usn = -1, flds = ?, sfld = ?, csum = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing note update: %w", err)
	}
	defer stmt.Close()

	for _, note := range p.Notes {
		if !note.changed {
			continue
		}
		note.CSum = Checksum(note.SFLD)
		if _, err := stmt.Exec(note.Mod, strings.Join(note.Fields, fieldSep), note.SFLD, note.CSum, note.ID); err != nil {
			return fmt.Errorf("updating note %d: %w", note.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notes: %w", err)
	}
	for _, note := range p.Notes {
		note.changed = false
	}
	return nil
}
