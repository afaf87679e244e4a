package reconcile

import "strings"

// Forecast columns that form the container identity
const (
	ColumnStore        = "Store"
	ColumnDiv          = "Div"
	ColumnCartonNumber = "Carton Number"
	ColumnContainerID  = "Container ID"
)

type identityMode int

const (
	identityComposite identityMode = iota
	identityPrebuilt
)

// IdentityResolver derives container ids for the rows of one sheet. Which
// columns it reads is decided once from the header, not per row.
type IdentityResolver struct {
	mode   identityMode
	store  int
	div    int
	carton int
	id     int
}

// NewIdentityResolver inspects a header row. It prefers the Store, Div and
// Carton Number columns and falls back to a prebuilt Container ID column.
func NewIdentityResolver(source, sheet string, header []string) (*IdentityResolver, error) {
	idx := HeaderIndex(header)

	store, okStore := idx[ColumnStore]
	div, okDiv := idx[ColumnDiv]
	carton, okCarton := idx[ColumnCartonNumber]
	if okStore && okDiv && okCarton {
		return &IdentityResolver{mode: identityComposite, store: store, div: div, carton: carton, id: -1}, nil
	}

	if id, ok := idx[ColumnContainerID]; ok {
		return &IdentityResolver{mode: identityPrebuilt, store: -1, div: -1, carton: -1, id: id}, nil
	}

	var missing []string
	for _, c := range []struct {
		name string
		ok   bool
	}{{ColumnStore, okStore}, {ColumnDiv, okDiv}, {ColumnCartonNumber, okCarton}} {
		if !c.ok {
			missing = append(missing, c.name)
		}
	}
	missing = append(missing, ColumnContainerID)
	return nil, &SchemaError{Source: source, Sheet: sheet, Missing: missing}
}

// UsesPrebuiltID reports whether the resolver fell back to the Container ID column
func (r *IdentityResolver) UsesPrebuiltID() bool {
	return r.mode == identityPrebuilt
}

// Resolve returns the container id for a data row; short rows read missing
// cells as empty.
func (r *IdentityResolver) Resolve(row []string) string {
	if r.mode == identityPrebuilt {
		return strings.TrimSpace(cell(row, r.id))
	}
	return ContainerID(cell(row, r.store), cell(row, r.div), cell(row, r.carton))
}

// ContainerID concatenates the trimmed store, division and carton number
// with no separator.
func ContainerID(store, div, carton string) string {
	return strings.TrimSpace(store) + strings.TrimSpace(div) + strings.TrimSpace(carton)
}

// HeaderIndex maps trimmed column names to their position. The first
// occurrence of a duplicated name wins.
func HeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
