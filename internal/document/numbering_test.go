package document_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bildev/facturepro/internal/document"
)

func TestParseSequence(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"FAC-202503-0001", 1},
		{"FAC-202503-0042", 42},
		{"DEV-202501-1234", 1234},
		{"", 0},
		{"FAC-202503-", 0},
		{"no-digits-here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, document.ParseSequence(tt.id))
		})
	}
}

func TestNextID(t *testing.T) {
	march2025 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("FirstInvoiceEver", func(t *testing.T) {
		assert.Equal(t, "FAC-202503-0001", document.NextID(document.TypeInvoice, "", march2025))
	})

	t.Run("FifthInvoiceOfPeriod", func(t *testing.T) {
		assert.Equal(t, "FAC-202503-0005", document.NextID(document.TypeInvoice, "FAC-202503-0004", march2025))
	})

	t.Run("QuoteCounterIsIndependent", func(t *testing.T) {
		// Quotes start their own counter even when invoices already exist
		// in the same period.
		assert.Equal(t, "DEV-202503-0001", document.NextID(document.TypeQuote, "", march2025))
	})

	t.Run("SequenceContinuesAcrossPeriods", func(t *testing.T) {
		// Only the period segment follows the clock; the sequence keeps
		// counting from the latest document of the type.
		april2025 := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, "FAC-202504-0013", document.NextID(document.TypeInvoice, "FAC-202503-0012", april2025))
	})

	t.Run("PaddingGrowsPastFourDigits", func(t *testing.T) {
		assert.Equal(t, "FAC-202503-10000", document.NextID(document.TypeInvoice, "FAC-202502-9999", march2025))
	})
}

// Serialized allocation: when two creations observe the same latest document
// one after the other (which the store's advisory lock guarantees), they
// produce distinct consecutive identifiers instead of colliding.
func TestNextID_SerializedAllocation(t *testing.T) {
	march2025 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	first := document.NextID(document.TypeInvoice, "FAC-202503-0004", march2025)
	second := document.NextID(document.TypeInvoice, first, march2025)

	assert.Equal(t, "FAC-202503-0005", first)
	assert.Equal(t, "FAC-202503-0006", second)
	assert.NotEqual(t, first, second)
}

func ExampleNextID() {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	fmt.Println(document.NextID(document.TypeInvoice, "", now))
	fmt.Println(document.NextID(document.TypeQuote, "DEV-202502-0007", now))
	// Output:
	// FAC-202503-0001
	// DEV-202503-0008
}
