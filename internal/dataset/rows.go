package dataset

// PageSize is the number of raw rows shown per page
const PageSize = 5

// GetRows returns the rows in [offset, offset+PageSize) clipped to the table
// bounds, and whether rows remain after the window. Negative offsets are
// treated as zero.
func GetRows(table *Table, offset int) ([]Trip, bool) {
	n := table.Len()
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return nil, false
	}

	end := offset + PageSize
	if end > n {
		end = n
	}
	return table.Rows[offset:end:end], end < n
}
