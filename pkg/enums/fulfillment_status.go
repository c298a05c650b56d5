package enums

import "fmt"

// FulfillmentStatus is the terminal disposition of an order line.
type FulfillmentStatus string

const (
	FulfillmentStatusPaid      FulfillmentStatus = "paid"
	FulfillmentStatusSent      FulfillmentStatus = "sent"
	FulfillmentStatusGift      FulfillmentStatus = "gift"
	FulfillmentStatusWaste     FulfillmentStatus = "waste"
	FulfillmentStatusCancelled FulfillmentStatus = "cancelled"
)

var validFulfillmentStatuses = []FulfillmentStatus{
	FulfillmentStatusPaid,
	FulfillmentStatusSent,
	FulfillmentStatusGift,
	FulfillmentStatusWaste,
	FulfillmentStatusCancelled,
}

// String implements fmt.Stringer.
func (f FulfillmentStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentStatus.
func (f FulfillmentStatus) IsValid() bool {
	for _, candidate := range validFulfillmentStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFulfillmentStatus converts raw input into a FulfillmentStatus.
func ParseFulfillmentStatus(value string) (FulfillmentStatus, error) {
	for _, candidate := range validFulfillmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment status %q", value)
}
