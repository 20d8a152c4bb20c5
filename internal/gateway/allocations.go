package gateway

import (
	"encoding/base64"
	"strings"

	"github.com/shopspring/decimal"
)

// SerializeAllocations flattens allocations into "id1=amount1|id2=amount2".
// Order is preserved; ids must not contain '|' or '='.
func SerializeAllocations(allocations []InvoiceAllocation) string {
	var sb strings.Builder
	for i, alloc := range allocations {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(alloc.ID)
		sb.WriteByte('=')
		sb.WriteString(alloc.Amount.String())
	}
	return sb.String()
}

// DeserializeAllocations parses the flattened form back into allocations.
// Pairs that do not split into id and a parseable amount are skipped.
func DeserializeAllocations(s string) []InvoiceAllocation {
	var allocations []InvoiceAllocation
	for _, pair := range strings.Split(s, "|") {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		allocations = append(allocations, InvoiceAllocation{ID: id, Amount: amount})
	}
	return allocations
}

// EncodeExternalID wraps the serialized allocations in base64 so the blob
// survives the processor round trip as an opaque external id.
func EncodeExternalID(allocations []InvoiceAllocation) string {
	return base64.StdEncoding.EncodeToString([]byte(SerializeAllocations(allocations)))
}

// DecodeExternalID recovers allocations from a processor external id. A blob
// that is not valid base64 yields no allocations.
func DecodeExternalID(externalID string) []InvoiceAllocation {
	decoded, err := base64.StdEncoding.DecodeString(externalID)
	if err != nil {
		return nil
	}
	return DeserializeAllocations(string(decoded))
}
