package ecs

// smallestIDs returns a copy of the id list of the smallest store so the
// caller can mutate the world while iterating. A nil store means no entity
// can match.
func smallestIDs(stores ...componentStore) []entityID {
	var best componentStore
	for _, s := range stores {
		if s == nil || s.Len() == 0 {
			return nil
		}
		if best == nil || s.Len() < best.Len() {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	return append([]entityID(nil), best.IDs()...)
}

// hasAll reports whether every store holds id.
func hasAll(id entityID, stores ...componentStore) bool {
	for _, s := range stores {
		if !s.Has(id) {
			return false
		}
	}
	return true
}
