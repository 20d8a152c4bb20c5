package gateway

import "strings"

// mapStatus translates a Xendit invoice status into the platform vocabulary.
// The mapping is case-insensitive and total: anything the processor reports
// beyond settled/paid/pending counts as declined. An absent status is handled
// upstream and never reaches this function.
func mapStatus(raw string) Status {
	switch strings.ToLower(raw) {
	case "settled":
		return StatusApproved
	case "paid":
		return StatusApproved
	case "pending":
		return StatusPending
	default:
		return StatusDeclined
	}
}
