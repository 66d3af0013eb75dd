package models

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ToggleID flips membership of id in the set and reports whether it is now present.
// The input slice is never modified.
func ToggleID(ids []string, id string) ([]string, bool) {
	if containsID(ids, id) {
		out := make([]string, 0, len(ids)-1)
		for _, v := range ids {
			if v != id {
				out = append(out, v)
			}
		}
		return out, false
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), true
}
