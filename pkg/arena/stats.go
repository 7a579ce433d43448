package arena

// ClassStats describes the chunks of one size class. Size is 0 for the
// oversized list, whose chunks have no common capacity.
type ClassStats struct {
	Size     int
	Chunks   int
	Used     int
	Reserved int
}

// Stats is a point-in-time snapshot of the arena's chunk lists.
type Stats struct {
	Classes [numLists]ClassStats
}

// Stats returns per-class chunk counts and byte usage. Usable on a
// released arena, which reports all zeroes.
func (a *Arena) Stats() Stats {
	var st Stats

	for idx, list := range a.lists {
		cls := &st.Classes[idx]
		if idx < numClasses {
			cls.Size = classSize(idx)
		}

		for _, c := range list {
			cls.Chunks++
			cls.Used += c.used
			cls.Reserved += len(c.buf)
		}
	}

	return st
}

// TotalUsed returns the bytes bump-allocated across all lists.
func (st Stats) TotalUsed() int {
	total := 0
	for _, cls := range st.Classes {
		total += cls.Used
	}

	return total
}

// TotalReserved returns the bytes held by all chunks, used or not.
func (st Stats) TotalReserved() int {
	total := 0
	for _, cls := range st.Classes {
		total += cls.Reserved
	}

	return total
}
