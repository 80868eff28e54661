package session

// ConnRegistry maps connection ids to connection state. It has no locking of
// its own: the Router serializes all access.
type ConnRegistry struct {
	conns map[string]*Conn
}

// NewConnRegistry creates an empty connection registry.
func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{
		conns: make(map[string]*Conn),
	}
}

// Add inserts or overwrites the entry for the connection id.
func (r *ConnRegistry) Add(conn *Conn) {
	r.conns[conn.ID] = conn
}

// Get returns the connection for id, if registered.
func (r *ConnRegistry) Get(id string) (*Conn, bool) {
	conn, ok := r.conns[id]
	return conn, ok
}

// Remove deletes the entry for id. Removing a nonexistent id is a no-op.
func (r *ConnRegistry) Remove(id string) {
	delete(r.conns, id)
}

// Values returns all registered connections in unspecified order.
func (r *ConnRegistry) Values() []*Conn {
	out := make([]*Conn, 0, len(r.conns))
	for _, conn := range r.conns {
		out = append(out, conn)
	}
	return out
}

// ForEach calls fn for every registered connection.
func (r *ConnRegistry) ForEach(fn func(conn *Conn)) {
	for _, conn := range r.conns {
		fn(conn)
	}
}

// Len returns the number of registered connections.
func (r *ConnRegistry) Len() int {
	return len(r.conns)
}
