package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
