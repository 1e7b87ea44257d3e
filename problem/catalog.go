package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrUnknownType is returned when a name is not registered in a catalog.
var ErrUnknownType = errors.New("unknown problem type")

// ErrSeedType is returned when a seed or problem does not match the type of
// the entry it is passed to.
var ErrSeedType = errors.New("mismatched value type")

// An Entry is a registered problem type with its seed and problem types
// erased.
type Entry interface {
	Name() string
	RandomSeed() any
	Generate(seed any) (any, error)
	Render(target io.Writer, problem any, showSolution bool) error

	// DecodeSeed parses a JSON seed. Seeds that implement SeedValidator are
	// validated.
	DecodeSeed(data []byte) (any, error)

	// DecodeProblem parses a JSON problem.
	DecodeProblem(data []byte) (any, error)
}

// A Catalog holds the registered problem types.
type Catalog struct {
	lock    sync.RWMutex
	entries map[string]Entry
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
	}
}

// Register adds a problem type to the catalog. It panics if a type with the
// same name is already registered.
func Register[S, P any](c *Catalog, t Type[S, P]) Entry {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := t.Name()
	if _, found := c.entries[name]; found {
		panic(fmt.Sprintf("problem type %q is already registered", name))
	}

	e := &entry[S, P]{t: t}
	c.entries[name] = e

	return e
}

// Names returns the names of all registered types in order.
func (c *Catalog) Names() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup returns the entry registered under the name.
func (c *Catalog) Lookup(name string) (Entry, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	e, found := c.entries[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	return e, nil
}

type entry[S, P any] struct {
	t Type[S, P]
}

func (e *entry[S, P]) Name() string {
	return e.t.Name()
}

func (e *entry[S, P]) RandomSeed() any {
	return e.t.RandomSeed()
}

func (e *entry[S, P]) Generate(seed any) (any, error) {
	s, ok := seed.(S)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a seed of %q",
			ErrSeedType, seed, e.t.Name())
	}

	return e.t.Generate(s), nil
}

func (e *entry[S, P]) Render(
	target io.Writer,
	problem any,
	showSolution bool,
) error {
	p, ok := problem.(P)
	if !ok {
		return fmt.Errorf("%w: %T is not a problem of %q",
			ErrSeedType, problem, e.t.Name())
	}

	return e.t.Render(target, p, showSolution)
}

func (e *entry[S, P]) DecodeSeed(data []byte) (any, error) {
	var s S

	err := json.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	if v, ok := any(s).(SeedValidator); ok {
		err = v.Validate()
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (e *entry[S, P]) DecodeProblem(data []byte) (any, error) {
	var p P

	err := json.Unmarshal(data, &p)
	if err != nil {
		return nil, fmt.Errorf("decode problem: %w", err)
	}

	return p, nil
}
