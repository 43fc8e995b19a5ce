package parts

import (
	"strings"
	"testing"
)

func TestLowStockBoundary(t *testing.T) {
	cases := []struct {
		qty, min int
		want     bool
	}{
		{0, 0, true},
		{0, 5, true},
		{4, 5, true},
		{5, 5, true},
		{6, 5, false},
		{100, 5, false},
	}
	for _, c := range cases {
		p := Part{StockQty: c.qty, MinStock: c.min}
		if got := p.LowStock(); got != c.want {
			t.Errorf("LowStock(qty=%d, min=%d) = %v, want %v", c.qty, c.min, got, c.want)
		}
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{PartID: 12, Requested: 10, Available: 3}
	msg := err.Error()
	for _, want := range []string{"12", "10", "3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should contain %q", msg, want)
		}
	}
}
