package schema

import (
	"fmt"
	"sync"
)

// UserType is a named refinement of a ValueType (its Def) with its own
// pretty-printer and text parser. The generic machinery sees through a
// user type to Def whenever it needs to (path navigation, type
// checking); the catalogue is what lets Print/Parse treat the name as
// opaque everywhere else.
type UserType struct {
	Name string
	Def  *ValueType

	// Print and Parse customize the user type's own text syntax, e.g. an
	// Ipv4 user type printed as dotted-quad instead of as its U32 def.
	// No code in this module calls either hook; schema.Print and
	// schema.Parse handle a user type by its name alone.
	Print func(value string) string
	Parse func(text string) (string, error)
}

// Equal compares user types by name alone: the catalogue is write-once,
// so two registrations sharing a name are assumed to share a
// definition (§3.1).
func (u *UserType) Equal(other *UserType) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Name == other.Name
}

// Catalogue is the process-wide registry of user types, in the shape
// of a SchemaRegistry: a write-once map guarded by a RWMutex so
// that once generation has started, lookups need no further
// synchronization (Design Notes, §5).
type Catalogue struct {
	mu    sync.RWMutex
	types map[string]*UserType
}

func NewCatalogue() *Catalogue {
	return &Catalogue{types: make(map[string]*UserType)}
}

// DefaultCatalogue is the process-wide catalogue that the schema parser
// consults by default. Tests that register scratch user types should
// construct their own Catalogue with NewCatalogue instead of polluting
// this one (Design Notes: "tests must reset it or use a per-run
// handle").
var DefaultCatalogue = NewCatalogue()

// Register adds a user type to the catalogue. Registration is one-shot:
// registering the same name twice fails, even with an identical
// definition.
func (c *Catalogue) Register(ut *UserType) (*UserType, error) {
	if ut.Name == "" {
		return nil, fmt.Errorf("schema: user type must have a name")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.types[ut.Name]; exists {
		return nil, fmt.Errorf("schema: user type %q already registered", ut.Name)
	}
	c.types[ut.Name] = ut
	return ut, nil
}

func (c *Catalogue) Lookup(name string) (*UserType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ut, ok := c.types[name]
	return ut, ok
}

func (c *Catalogue) All() []*UserType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]*UserType, 0, len(c.types))
	for _, ut := range c.types {
		res = append(res, ut)
	}
	return res
}
