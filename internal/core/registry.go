package core

// Registry is the authoritative mapping from room name to room state. It is
// owned by the hub and touched only from the dispatcher goroutine. Rooms are
// never renamed, merged, or destroyed.
type Registry struct {
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room registered under name, creating it with the
// given visibility if absent. First writer wins: isPublic is ignored when the
// room already exists.
func (g *Registry) GetOrCreate(name string, isPublic bool) *Room {
	if room, ok := g.rooms[name]; ok {
		return room
	}
	room := NewRoom(name, isPublic)
	g.rooms[name] = room
	return room
}

// Get returns the room registered under name, or nil.
func (g *Registry) Get(name string) *Room {
	return g.rooms[name]
}

// Len reports the number of registered rooms.
func (g *Registry) Len() int {
	return len(g.rooms)
}
