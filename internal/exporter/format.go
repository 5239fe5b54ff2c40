package exporter

import "fmt"

// formatFloat fixes monetary and percentage values to two decimals so
// 13.4 exports as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
