package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateInvoiceNumber_Format(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	num := GenerateInvoiceNumber(at)

	matched, err := regexp.MatchString(`^INV-20250601-[0-9A-F]{8}$`, num)
	if err != nil {
		t.Fatalf("regexp error: %v", err)
	}
	if !matched {
		t.Fatalf("invoice number %q does not match expected format", num)
	}
}

func TestGenerateInvoiceNumber_Distinct(t *testing.T) {
	at := time.Now().UTC()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		num := GenerateInvoiceNumber(at)
		if seen[num] {
			t.Fatalf("duplicate invoice number %q after %d draws", num, i)
		}
		seen[num] = true
	}
}
