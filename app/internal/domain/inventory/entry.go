package inventory

import "time"

type EntryType string

const (
	EntryIn  EntryType = "IN"
	EntryOut EntryType = "OUT"
)

func (t EntryType) IsValid() bool {
	switch t {
	case EntryIn, EntryOut:
		return true
	default:
		return false
	}
}

// Entry is one stock movement of a product variant.
type Entry struct {
	ID        string
	ProductID string
	Variant   string
	Quantity  int64
	Type      EntryType
	Note      string
	CreatedAt time.Time
}

// Delta is the signed change the entry applies to the variant stock.
func (e Entry) Delta() int64 {
	if e.Type == EntryOut {
		return -e.Quantity
	}
	return e.Quantity
}
