package classify

// DefaultHostname is used for commands that cannot be attributed to a host.
const DefaultHostname = "localhost"

// HostnameRegistry maps command ids to the host they run on. Insertion order
// is kept so that an unknown id can fall back to the first host seen.
type HostnameRegistry struct {
	hosts map[string]string
	order []string
}

// NewHostnameRegistry creates an empty registry.
func NewHostnameRegistry() *HostnameRegistry {
	return &HostnameRegistry{hosts: make(map[string]string)}
}

// Register records the host for a command id. Re-registering an id updates
// the host but keeps the id's original position.
func (r *HostnameRegistry) Register(id, host string) {
	if _, ok := r.hosts[id]; !ok {
		r.order = append(r.order, id)
	}
	r.hosts[id] = host
}

// Resolve returns the host for id, falling back to the first registered host
// and then to DefaultHostname.
func (r *HostnameRegistry) Resolve(id string) string {
	if host, ok := r.hosts[id]; ok {
		return host
	}
	if len(r.order) > 0 {
		return r.hosts[r.order[0]]
	}
	return DefaultHostname
}

// Len returns the number of registered command ids.
func (r *HostnameRegistry) Len() int {
	return len(r.order)
}
