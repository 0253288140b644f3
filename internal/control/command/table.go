package command

import (
	"errors"
	"fmt"
	"sort"
)

// Table is a command descriptor table sorted ascending by code and terminated
// by a descriptor with code Sentinel.
type Table struct {
	descs []Descriptor
}

// Registry collects descriptors during startup.
type Registry struct {
	descs []Descriptor
}

// NewRegistry returns a pointer to a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a descriptor.
func (r *Registry) Register(d Descriptor) {
	r.descs = append(r.descs, d)
}

// RegisterSimple adds a descriptor for a simple command without help
// references.
func (r *Registry) RegisterSimple(code Code, name string, explain string, action func()) {
	r.Register(Descriptor{
		Code:    code,
		Name:    name,
		Handler: NewSimple(func() string { return explain }, action),
	})
}

// Build sorts the registered descriptors, appends the sentinel and returns the
// resulting table.
// Returns an error for an empty registry, duplicate codes or names, and the
// use of reserved codes.
func (r *Registry) Build() (*Table, error) {
	if len(r.descs) == 0 {
		return nil, errors.New("no commands registered")
	}

	descs := make([]Descriptor, len(r.descs), len(r.descs)+1)
	copy(descs, r.descs)
	sort.SliceStable(descs, func(i, j int) bool { return descs[i].Code < descs[j].Code })

	names := make(map[string]Code, len(descs))
	for i, d := range descs {
		if d.Code == None || d.Code == Sentinel {
			return nil, fmt.Errorf("command '%s' uses reserved code %d", d.Name, uint16(d.Code))
		}
		if i > 0 && descs[i-1].Code == d.Code {
			return nil, fmt.Errorf("duplicate command code %d ('%s', '%s')", uint16(d.Code), descs[i-1].Name, d.Name)
		}
		if other, ok := names[d.Name]; ok {
			return nil, fmt.Errorf("duplicate command name '%s' (codes %d, %d)", d.Name, uint16(other), uint16(d.Code))
		}
		names[d.Name] = d.Code
	}

	descs = append(descs, Descriptor{Code: Sentinel, Name: "<sentinel>"})
	t := &Table{descs: descs}
	return t, t.Validate()
}

// Validate checks the table's integrity: it must hold at least one command,
// codes must be strictly ascending and within range, and the last descriptor
// must be the sentinel.
func (t *Table) Validate() error {
	if t == nil || len(t.descs) == 0 {
		return errors.New("table is empty")
	}
	last := t.descs[len(t.descs)-1]
	if last.Code != Sentinel {
		return fmt.Errorf("table is not terminated by the sentinel (last code %d)", uint16(last.Code))
	}
	if len(t.descs) < 2 {
		return errors.New("table holds no commands")
	}
	for i, d := range t.descs[:len(t.descs)-1] {
		if d.Code == None || d.Code >= Sentinel {
			return fmt.Errorf("descriptor %d ('%s') has out-of-range code %d", i, d.Name, uint16(d.Code))
		}
		if i > 0 && t.descs[i-1].Code >= d.Code {
			return fmt.Errorf("descriptor %d ('%s', code %d) not above its predecessor (code %d)", i, d.Name, uint16(d.Code), uint16(t.descs[i-1].Code))
		}
	}
	return nil
}

// Lookup returns the descriptor for the given code.
func (t *Table) Lookup(code Code) (Descriptor, bool) {
	i, _ := t.search(code)
	if i < 0 {
		return Descriptor{}, false
	}
	return t.descs[i], true
}

// ByName returns the descriptor with the given name.
func (t *Table) ByName(name string) (Descriptor, bool) {
	for _, d := range t.commands() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Descriptors returns a copy of the table's descriptors in code order,
// without the sentinel.
func (t *Table) Descriptors() []Descriptor {
	result := make([]Descriptor, len(t.descs)-1)
	copy(result, t.commands())
	return result
}

// Len returns the number of commands in the table.
func (t *Table) Len() int { return len(t.descs) - 1 }

func (t *Table) commands() []Descriptor {
	return t.descs[:len(t.descs)-1]
}

// search binary-searches for code among the commands.
// It returns the index (or -1) and the number of comparisons made.
func (t *Table) search(code Code) (index int, probes int) {
	lo, hi := 0, len(t.descs)-1 // the sentinel is never a match
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		probes++
		switch c := t.descs[mid].Code; {
		case c == code:
			return mid, probes
		case c < code:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1, probes
}
