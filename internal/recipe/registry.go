package recipe

import (
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when no recipe with the given id exists for a city.
var ErrNotFound = errors.New("recipe not found")

// Recipe is a user-submitted recipe attached to a city.
type Recipe struct {
	ID      int    `json:"id"`
	CityID  string `json:"-"`
	Content string `json:"content"`
}

// Registry is an in-memory store of recipes keyed by city id.
// Ids come from a single counter shared by all cities and are never reused.
type Registry struct {
	mu     sync.Mutex
	lastID int
	byCity map[string][]Recipe
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byCity: make(map[string][]Recipe)}
}

// Create assigns the next id and appends the recipe to the city's list.
func (r *Registry) Create(cityID, content string) Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	rec := Recipe{ID: r.lastID, CityID: cityID, Content: content}
	r.byCity[cityID] = append(r.byCity[cityID], rec)
	return rec
}

// List returns a copy of the city's recipes in insertion order.
// A city without recipes yields an empty, non-nil slice.
func (r *Registry) List(cityID string) []Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Recipe, len(r.byCity[cityID]))
	copy(out, r.byCity[cityID])
	return out
}

// Delete removes the recipe with the given id from the city's list.
func (r *Registry) Delete(cityID string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.byCity[cityID]
	if !ok {
		return ErrNotFound
	}

	idx := slices.IndexFunc(list, func(rec Recipe) bool { return rec.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	list = slices.Delete(list, idx, idx+1)
	if len(list) == 0 {
		delete(r.byCity, cityID)
		return nil
	}
	r.byCity[cityID] = list
	return nil
}

// Len returns the total number of recipes across all cities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, list := range r.byCity {
		n += len(list)
	}
	return n
}
