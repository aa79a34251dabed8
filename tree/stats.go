package tree

// Stats summarizes the shape of a tree.
type Stats struct {
	Folders    int `json:"folders"`
	Files      int `json:"files"`
	Unresolved int `json:"unresolved"`
	MaxDepth   int `json:"max_depth"`
}

// Stats counts the items of the tree in one walk.
func (t *Tree) Stats() Stats {
	var s Stats
	collectStats(t, 1, &s)
	return s
}

func collectStats(parent Parent, depth int, s *Stats) {
	for _, item := range parent.Children().All() {
		s.MaxDepth = max(s.MaxDepth, depth)
		switch item := item.(type) {
		case *File:
			s.Files++
			if item.Unresolved() {
				s.Unresolved++
			}
		case *Folder:
			s.Folders++
			collectStats(item, depth+1, s)
		}
	}
}
