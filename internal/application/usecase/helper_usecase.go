// internal/application/usecase/helper_usecase.go
package usecase

import "fmt"

// formatAmount renders a major-unit amount as a two-decimal fixed string
// (the shape wallet providers expect for order amounts).
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
