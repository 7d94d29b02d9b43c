package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber builds a booking invoice number such as
// "INV-20250601-9F2C4A1B": the creation date plus a random suffix. Uniqueness
// is enforced by the invoice_number index; callers retry on collision.
func GenerateInvoiceNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("INV-%s-%s", at.Format("20060102"), suffix)
}
