package buildindex

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with 1024-based units and one decimal
// place: "1023.0 B", "1.5 KB", "1.0 GB". Anything past GB is reported in TB.
// Existing generated pages depend on these exact labels and divisor.
func FormatSize(size int64) string {
	v := float64(size)
	for _, unit := range sizeUnits {
		if v < 1024.0 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", v)
}
