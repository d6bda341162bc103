package binding

// ResolveInterface returns the identifier iface should be constructed as.
//
// A mapping scoped to declaringClass wins over the unscoped mapping, which
// wins over iface itself. It never fails.
func (s *Store) ResolveInterface(iface, declaringClass string) string {
	if declaringClass != "" {
		if concrete, ok := s.Interface(iface, declaringClass); ok {
			return concrete
		}
	}
	if concrete, ok := s.Interface(iface, ""); ok {
		return concrete
	}
	return iface
}
