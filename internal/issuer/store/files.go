package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MrJamesThe3rd/parcelas/internal/encoding"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Files keeps one JSON document per issuer table.
type Files struct {
	fsys fs.FS
	dir  string // empty when fsys is not backed by a writable directory
}

// NewFiles serves tables from fsys, typically the embedded defaults. It is read-only.
func NewFiles(fsys fs.FS) *Files {
	return &Files{fsys: fsys}
}

// NewDir serves and stores tables in dir.
func NewDir(dir string) *Files {
	return &Files{fsys: os.DirFS(dir), dir: dir}
}

func (s *Files) ListTables(ctx context.Context) ([]pricing.IssuerTable, error) {
	names, err := fs.Glob(s.fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("listing table files: %w", err)
	}

	tables := make([]pricing.IssuerTable, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := s.readTable(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		tables = append(tables, t)
	}

	return tables, nil
}

func (s *Files) readTable(name string) (pricing.IssuerTable, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return pricing.IssuerTable{}, err
	}
	defer f.Close()

	r, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return pricing.IssuerTable{}, err
	}

	var t pricing.IssuerTable
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return pricing.IssuerTable{}, fmt.Errorf("decoding table: %w", err)
	}

	if strings.TrimSpace(t.Issuer) == "" {
		t.Issuer = strings.TrimSuffix(path.Base(name), ".json")
	}

	return t, nil
}

func (s *Files) SaveTable(_ context.Context, t pricing.IssuerTable) error {
	if s.dir == "" {
		return issuer.ErrReadOnly
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".table-*")
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, FileName(t.Issuer))); err != nil {
		return fmt.Errorf("renaming file: %w", err)
	}

	return nil
}

// FileName returns the file a table for issuer is stored under,
// e.g. "American Express" -> "american-express.json", "Cartão" -> "cartao.json".
// Names with letters that have no ASCII form get a hash suffix so that
// distinct issuers never share a file.
func FileName(issuerName string) string {
	name := strings.ToLower(strings.TrimSpace(issuerName))

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	ascii, _, err := transform.String(stripMarks, name)
	if err != nil {
		ascii = name
	}

	lossy := false
	slug := strings.Map(func(r rune) rune {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			return r
		case r > unicode.MaxASCII:
			lossy = true
		}

		return '-'
	}, ascii)
	slug = strings.Trim(slug, "-")

	if lossy || slug == "" {
		sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[:8]
		slug = strings.Trim(slug+"-"+sum, "-")
	}

	return slug + ".json"
}
