package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"voirank/internal/services"
)

// NameColumn is the header of the catalog column holding entity names.
const NameColumn = "キャラクター名"

// Catalog is the ordered set of entity names to search for, plus the subset
// that must match a whole tag rather than a substring.
type Catalog struct {
	names []string
	index map[string]int
	exact map[string]struct{}
}

// New builds a catalog from names in order. Blank and duplicate names are
// dropped. Exact-match names absent from names are ignored.
func New(names []string, exact []string) *Catalog {
	c := &Catalog{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
		exact: make(map[string]struct{}, len(exact)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := c.index[name]; ok {
			continue
		}
		c.index[name] = len(c.names)
		c.names = append(c.names, name)
	}
	for _, name := range exact {
		name = strings.TrimSpace(name)
		if _, ok := c.index[name]; ok {
			c.exact[name] = struct{}{}
		}
	}
	return c
}

// Load reads a catalog CSV. The NameColumn column is used when present,
// otherwise the first column.
func Load(path string, exact []string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "catalog file "+path+" not found", err)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	names, err := readNames(file)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "catalog "+path+" has no names", nil)
	}
	return New(names, exact), nil
}

func readNames(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	column := 0
	for i, field := range header {
		if strings.TrimSpace(strings.TrimPrefix(field, "\ufeff")) == NameColumn {
			column = i
			break
		}
	}

	var names []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if column < len(row) {
			names = append(names, row[column])
		}
	}
	return names, nil
}

// Names returns the entity names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of entities.
func (c *Catalog) Len() int { return len(c.names) }

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Index returns the position of name in catalog order.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// IsExact reports whether name only matches whole tags.
func (c *Catalog) IsExact(name string) bool {
	_, ok := c.exact[name]
	return ok
}
