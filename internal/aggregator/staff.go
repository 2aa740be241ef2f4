package aggregator

// StaffDirectory resolves a stored staff reference to a display name through
// an ordered chain of registries (primary staff roster first, then the old
// user registry). Additional registries are an append, not a new branch.
//
// Registries are plain id→name maps pre-loaded in full by the caller; the
// directory never queries anything per row.
type StaffDirectory struct {
	registries []map[string]string
}

// NewStaffDirectory builds a directory from registries in lookup order.
func NewStaffDirectory(registries ...map[string]string) *StaffDirectory {
	return &StaffDirectory{registries: registries}
}

// Resolve returns the first registry hit for ref, falling back to the raw
// reference itself so the result is never empty for a non-empty input.
func (d *StaffDirectory) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	for _, reg := range d.registries {
		if name, ok := reg[ref]; ok && name != "" {
			return name
		}
	}
	return ref
}
