package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"release-sync/core/reconcile"
	"release-sync/core/utils"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

const (
	// Extension is the file extension of product records.
	Extension = ".md"

	delimiter = "---"

	fieldReleases          = "releases"
	fieldReleaseCycle      = "releaseCycle"
	fieldReleaseDate       = "releaseDate"
	fieldLatest            = "latest"
	fieldLatestReleaseDate = "latestReleaseDate"
)

// Record is a parsed product record.
type Record struct {
	// Name is the product name (file stem).
	Name string

	// Path is the file the record was loaded from. Empty for parsed buffers.
	Path string

	front    []byte
	releases *ast.SequenceNode
	body     []byte
	cycles   []reconcile.CycleRecord
	edits    *edits
}

// Load reads <dir>/<name>.md.
func Load(dir, name string) (*Record, error) {
	path := filepath.Join(dir, name+Extension)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product %s: %w", name, err)
	}

	rec, err := Parse(name, path, data)
	if err != nil {
		return nil, err
	}
	rec.Path = path
	return rec, nil
}

// Parse parses a product record. source only appears in errors.
func Parse(name, source string, data []byte) (*Record, error) {
	front, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, reconcile.NewInputError(name, source, err)
	}

	file, err := parser.ParseBytes(front, parser.ParseComments)
	if err != nil {
		return nil, reconcile.NewInputError(name, source, fmt.Errorf("failed to parse frontmatter: %w", err))
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, reconcile.NewInputError(name, source, errors.New("empty frontmatter"))
	}

	fields, ok := mappingValues(file.Docs[0].Body)
	if !ok {
		return nil, reconcile.NewInputError(name, source, errors.New("frontmatter is not a mapping"))
	}

	var releases *ast.SequenceNode
	for _, mv := range fields {
		if keyText(mv) != fieldReleases {
			continue
		}
		seq, ok := mv.Value.(*ast.SequenceNode)
		if !ok {
			return nil, reconcile.NewInputError(name, source, errors.New("releases is not a sequence"))
		}
		releases = seq
	}
	if releases == nil {
		return nil, reconcile.NewInputError(name, source, errors.New("no releases defined"))
	}

	cycles := make([]reconcile.CycleRecord, 0, len(releases.Values))
	for i, item := range releases.Values {
		cycle, err := parseCycle(item)
		if err != nil {
			return nil, reconcile.NewInputError(name, source, fmt.Errorf("release %d: %w", i, err))
		}
		cycles = append(cycles, cycle)
	}

	return &Record{
		Name:     name,
		front:    front,
		releases: releases,
		body:     body,
		cycles:   cycles,
		edits:    newEdits(),
	}, nil
}

// Cycles returns the cycle records in file order.
func (r *Record) Cycles() []reconcile.CycleRecord {
	out := make([]reconcile.CycleRecord, len(r.cycles))
	copy(out, r.cycles)
	return out
}

// Body returns the prose following the frontmatter.
func (r *Record) Body() []byte {
	return r.body
}

// Apply writes the changed fields of every change into the frontmatter.
// Only the lines holding a changed value are rewritten; missing keys are
// added as new lines at the end of their cycle.
func (r *Record) Apply(changes []reconcile.CycleChange) error {
	for _, change := range changes {
		if change.Index < 0 || change.Index >= len(r.releases.Values) {
			return fmt.Errorf("cycle index %d out of range for %s", change.Index, r.Name)
		}
		if name := r.cycles[change.Index].Name; name != change.After.Name {
			return fmt.Errorf("cycle %d of %s is %q, not %q", change.Index, r.Name, name, change.After.Name)
		}

		if change.ReleaseDateChanged() {
			if err := r.set(change.Index, fieldReleaseDate, utils.FormatDate(change.After.ReleaseDate)); err != nil {
				return err
			}
		}
		if change.LatestChanged() {
			if err := r.set(change.Index, fieldLatest, strconv.Quote(change.After.Latest)); err != nil {
				return err
			}
			if err := r.set(change.Index, fieldLatestReleaseDate, utils.FormatDate(change.After.LatestReleaseDate)); err != nil {
				return err
			}
		}

		r.cycles[change.Index] = change.After
	}
	return nil
}

// Bytes renders the record: frontmatter, delimiter and the untouched body.
func (r *Record) Bytes() []byte {
	front := string(r.edits.apply(r.front))

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.WriteString(front)
	if !strings.HasSuffix(front, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(delimiter + "\n")
	buf.Write(r.body)
	return buf.Bytes()
}

// Save writes the record back to Path through a temporary file.
func (r *Record) Save() error {
	if r.Path == "" {
		return fmt.Errorf("record %s has no path", r.Name)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(r.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.Path), "."+filepath.Base(r.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", r.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(r.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", r.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", r.Name, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", r.Name, err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.Path, err)
	}
	return nil
}

// List returns the names of all product records in dir, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list products in %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// splitFrontmatter separates the YAML block from the body.
// The body starts right after the closing delimiter line.
func splitFrontmatter(data []byte) (front, body []byte, err error) {
	rest, ok := cutLine(data, delimiter)
	if !ok {
		return nil, nil, errors.New("missing opening frontmatter delimiter")
	}

	offset := 0
	for offset <= len(rest) {
		end := bytes.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		if end >= 0 {
			line = rest[offset : offset+end]
		}
		if string(bytes.TrimRight(line, "\r")) == delimiter {
			if end < 0 {
				return rest[:offset], nil, nil
			}
			return rest[:offset], rest[offset+end+1:], nil
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, nil, errors.New("missing closing frontmatter delimiter")
}

// cutLine strips a first line equal to want.
func cutLine(data []byte, want string) ([]byte, bool) {
	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		return nil, false
	}
	if string(bytes.TrimRight(data[:end], "\r")) != want {
		return nil, false
	}
	return data[end+1:], true
}
