package dataprocessing

// pruneRows keeps the rows that have at least len(columns) - threshold
// present cells and returns the pruned table. Only numeric absents count as
// missing here.
func pruneRows(t *Table, threshold int) *Table {
	need := len(t.Columns) - threshold

	keep := make([]int, 0, t.Rows)
	for row := 0; row < t.Rows; row++ {
		present := 0
		for _, col := range t.Columns {
			if !col.Absent(row) {
				present++
			}
		}
		if present >= need {
			keep = append(keep, row)
		}
	}

	if len(keep) == t.Rows {
		return t
	}

	out := &Table{Columns: make([]*Column, len(t.Columns)), Rows: len(keep)}
	for i, col := range t.Columns {
		pruned := &Column{Name: col.Name, Kind: col.Kind}
		if col.Kind == KindNumeric {
			pruned.Numbers = make([]NullFloat, len(keep))
			for j, row := range keep {
				pruned.Numbers[j] = col.Numbers[row]
			}
		} else {
			pruned.Texts = make([]string, len(keep))
			for j, row := range keep {
				pruned.Texts[j] = col.Texts[row]
			}
		}
		out.Columns[i] = pruned
	}
	return out
}
