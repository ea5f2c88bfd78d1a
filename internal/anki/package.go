// Package anki reads and rewrites Anki .apkg files.
//
// An .apkg is a zip holding a SQLite collection (collection.anki2 or
// collection.anki21) plus media. The package is extracted into a temporary
// directory, edited in place and zipped again by SaveAs.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// fieldSep separates note fields in the flds column.
const fieldSep = "\x1f"

// Collection file names, newest first.
var collectionFiles = []string{"collection.anki21", "collection.anki2"}

// Package is an opened .apkg.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB

	Models    map[int64]*Model
	Decks     map[int64]*Deck
	Notes     []*Note
	CardCount int
}

// Model is an Anki note type. Keys not modeled here survive a save.
type Model struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Fields    []Field `json:"flds"`
	SortField int     `json:"sortf"`
	CSS       string  `json:"css"`

	raw     map[string]json.RawMessage
	changed bool
}

// Field is one field of a note type.
type Field struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Font string `json:"font,omitempty"`
	Size int    `json:"size,omitempty"`

	raw map[string]json.RawMessage
}

// Deck is an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Note is one row of the notes table.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	Tags    string
	Fields  []string
	SFLD    string
	CSum    int64

	changed bool
}

// OpenPackage extracts and loads an .apkg file.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
		Decks:  make(map[int64]*Deck),
	}

	tempDir, err := os.MkdirTemp("", "pitchgraph-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	dbPath, err := pkg.collectionPath()
	if err != nil {
		pkg.Close()
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	pkg.db = db

	for _, load := range []func() error{pkg.loadCollection, pkg.loadNotes, pkg.countCards} {
		if err := load(); err != nil {
			pkg.Close()
			return nil, err
		}
	}

	return pkg, nil
}

func (p *Package) collectionPath() (string, error) {
	for _, name := range collectionFiles {
		path := filepath.Join(p.tempDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no collection in %s", p.path)
}

func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(p.tempDir) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("illegal file path: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return fmt.Errorf("extracting %s: %w", f.Name, err)
			}
			continue
		}
		if err := extractFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}

func (p *Package) loadCollection() error {
	var models, decks string
	if err := p.db.QueryRow("SELECT models, decks FROM col").Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, data := range modelsMap {
		model, err := parseModel(data)
		if err != nil {
			return err
		}
		p.Models[model.ID] = model
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}
	for _, data := range decksMap {
		var deck Deck
		if err := json.Unmarshal(data, &deck); err != nil {
			continue
		}
		p.Decks[deck.ID] = &deck
	}

	return nil
}

func parseModel(data json.RawMessage) (*Model, error) {
	model := &Model{}
	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}
	if err := json.Unmarshal(data, &model.raw); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}

	var rawFields []map[string]json.RawMessage
	if err := json.Unmarshal(model.raw["flds"], &rawFields); err == nil && len(rawFields) == len(model.Fields) {
		for i := range model.Fields {
			model.Fields[i].raw = rawFields[i]
		}
	}
	sort.Slice(model.Fields, func(i, j int) bool { return model.Fields[i].Ord < model.Fields[j].Ord })
	return model, nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query("SELECT id, guid, mid, mod, tags, flds, sfld, csum FROM notes ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note Note
			flds string
		)
		if err := rows.Scan(&note.ID, &note.GUID, &note.ModelID, &note.Mod,
			&note.Tags, &flds, &note.SFLD, &note.CSum); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		note.Fields = strings.Split(flds, fieldSep)
		p.Notes = append(p.Notes, &note)
	}

	return rows.Err()
}

func (p *Package) countCards() error {
	if err := p.db.QueryRow("SELECT count(*) FROM cards").Scan(&p.CardCount); err != nil {
		return fmt.Errorf("counting cards: %w", err)
	}
	return nil
}

// Model returns the note type of a note.
func (p *Package) Model(note *Note) *Model {
	return p.Models[note.ModelID]
}

// Close releases the database and removes the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

// Summary describes the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Anki Package: %s\n", p.path)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, deck := range p.sortedDecks() {
		fmt.Fprintf(&sb, "    - %s\n", deck.Name)
	}
	fmt.Fprintf(&sb, "  Note Types: %d\n", len(p.Models))
	for _, model := range p.SortedModels() {
		fmt.Fprintf(&sb, "    - %s (%d fields)\n", model.Name, len(model.Fields))
	}
	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	fmt.Fprintf(&sb, "  Cards: %d\n", p.CardCount)

	return sb.String()
}

// SortedModels returns the note types ordered by name.
func (p *Package) SortedModels() []*Model {
	out := make([]*Model, 0, len(p.Models))
	for _, m := range p.Models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *Package) sortedDecks() []*Deck {
	out := make([]*Deck, 0, len(p.Decks))
	for _, d := range p.Decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
