package body

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBody is returned when a body id is registered twice.
	ErrDuplicateBody = errors.New("body: duplicate id")
	// ErrUnknownParent is returned when a child references a parent that has not been registered.
	ErrUnknownParent = errors.New("body: unknown parent")
)

// Registry holds the tracked bodies in insertion order together with the explicit parent links.
// It is built once at load time and read every frame.
type Registry struct {
	order    []*TrackedBody
	byID     map[int]*TrackedBody
	children map[int][]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[int]*TrackedBody),
		children: make(map[int][]int),
	}
}

// Add registers a body. Parents must be registered before their children.
//
// Parameters:
//   - b: the body to register
//
// Returns:
//   - error: ErrDuplicateBody or ErrUnknownParent
func (r *Registry) Add(b *TrackedBody) error {
	if b == nil {
		return fmt.Errorf("body: nil body")
	}
	if _, ok := r.byID[b.ID]; ok {
		return fmt.Errorf("%w: %d (%s)", ErrDuplicateBody, b.ID, b.Name)
	}
	if b.HasParent {
		if _, ok := r.byID[b.ParentID]; !ok {
			return fmt.Errorf("%w: %d for body %d (%s)", ErrUnknownParent, b.ParentID, b.ID, b.Name)
		}
		r.children[b.ParentID] = append(r.children[b.ParentID], b.ID)
	}
	r.byID[b.ID] = b
	r.order = append(r.order, b)
	return nil
}

// Get returns the body with the given id, or nil.
func (r *Registry) Get(id int) *TrackedBody {
	return r.byID[id]
}

// All returns the bodies in insertion order. The slice must not be modified.
func (r *Registry) All() []*TrackedBody {
	return r.order
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.order)
}

// Parent returns the parent of the given body.
//
// Parameters:
//   - id: the child id
//
// Returns:
//   - *TrackedBody: the parent, or nil
//   - bool: false if the body has no parent or the parent is unknown
func (r *Registry) Parent(id int) (*TrackedBody, bool) {
	b := r.byID[id]
	if b == nil || !b.HasParent {
		return nil, false
	}
	p := r.byID[b.ParentID]
	return p, p != nil
}

// Root walks the parent links up to the top-level ancestor. A body without a parent is its own root.
//
// Parameters:
//   - id: the starting body id
//
// Returns:
//   - int: the id of the top-level ancestor (id itself if unknown)
func (r *Registry) Root(id int) int {
	// Add only accepts already-registered parents, so the links cannot form a cycle.
	for {
		p, ok := r.Parent(id)
		if !ok {
			return id
		}
		id = p.ID
	}
}

// Children returns the ids of the direct children of a body in insertion order.
func (r *Registry) Children(id int) []int {
	return r.children[id]
}

// Index returns the insertion index of a body, or -1.
func (r *Registry) Index(id int) int {
	for i, b := range r.order {
		if b.ID == id {
			return i
		}
	}
	return -1
}
