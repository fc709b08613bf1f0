package bucket

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Bucket is a handle on one dataset root plus its file index.
type Bucket struct {
	root string
	db   *sql.DB
}

// Open prepares the dataset tree rooted at path and connects the file index.
// Missing dataclass directories are created so a fresh dataset is usable
// immediately.
func Open(path string) (*Bucket, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	for _, class := range Classes() {
		if err := os.MkdirAll(filepath.Join(root, class.Dir()), 0o755); err != nil {
			return nil, fmt.Errorf("create dataclass directory: %w", err)
		}
	}

	metaDir := filepath.Join(root, ".pipet")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create metadata directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(metaDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	b := &Bucket{root: root, db: db}
	if err := b.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Close closes the underlying index database.
func (b *Bucket) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Root returns the absolute dataset root path.
func (b *Bucket) Root() string {
	return b.root
}

// MetaDir returns the dataset metadata directory.
func (b *Bucket) MetaDir() string {
	return filepath.Join(b.root, ".pipet")
}

// Update rescans the dataset tree and rebuilds the file index.
func (b *Bucket) Update(ctx context.Context) error {
	entries, err := b.scan()
	if err != nil {
		return err
	}
	return b.replaceIndex(ctx, entries)
}

func (b *Bucket) scan() ([]Entry, error) {
	var entries []Entry
	for _, class := range Classes() {
		classRoot := filepath.Join(b.root, class.Dir())
		err := filepath.WalkDir(classRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != classRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			rel, err := filepath.Rel(b.root, path)
			if err != nil {
				return err
			}
			entries = append(entries, entryFromPath(class, rel, filepath.ToSlash(rel)))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", class.Dir(), err)
		}
	}
	return entries, nil
}

// entryFromPath maps a relative file path to an Entry using the dataclass
// layout conventions.
func entryFromPath(class DataClass, rel, slashRel string) Entry {
	segs := strings.Split(slashRel, "/")
	// segs[0] is the dataclass directory itself.
	inner := segs[1:]
	entry := Entry{
		Class:    class,
		Filename: inner[len(inner)-1],
		RelPath:  rel,
	}
	entry.Ext = splitExt(entry.Filename)
	body := inner[:len(inner)-1]

	switch class {
	case ClassProcessing, ClassResults:
		if len(body) > 0 {
			entry.Pipeline = body[0]
		}
		if len(body) > 1 {
			entry.Step = body[1]
		}
		if len(body) > 2 {
			entry.Subject = body[2]
		}
	default: // ClassData, ClassMask: no pipeline level
		if len(body) > 0 {
			entry.Step = body[0]
		}
		if len(body) > 1 {
			entry.Subject = body[1]
		}
	}
	return entry
}

// StepDirs lists the step directories for a dataclass. Pipeline scopes the
// listing for Processing and Results and is ignored for Mask and Data.
func (b *Bucket) StepDirs(class DataClass, pipeline string) ([]string, error) {
	base := filepath.Join(b.root, class.Dir())
	if class == ClassProcessing || class == ClassResults {
		if strings.TrimSpace(pipeline) == "" {
			return nil, fmt.Errorf("pipeline label required for %s step listing", class)
		}
		base = filepath.Join(base, pipeline)
	}

	dirEntries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list step directories: %w", err)
	}

	var dirs []string
	for _, de := range dirEntries {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		dirs = append(dirs, de.Name())
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Summary renders a short per-dataclass snapshot of the dataset.
func (b *Bucket) Summary(ctx context.Context) (string, error) {
	counts, err := b.classCounts(ctx)
	if err != nil {
		return "", err
	}
	var s strings.Builder
	fmt.Fprintf(&s, "Dataset [%s]\n", filepath.Base(b.root))
	fmt.Fprintf(&s, "Path: %s\n", b.root)
	for _, class := range Classes() {
		fmt.Fprintf(&s, "%-10s: %d file(s)\n", class.Dir(), counts[class])
	}
	return strings.TrimRight(s.String(), "\n"), nil
}
