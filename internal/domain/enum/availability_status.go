package enum

// AvailabilityStatus describes what is known about stock and price for a product line
type AvailabilityStatus string

const (
	AvailabilityCustomPricingNeeded    AvailabilityStatus = "custom_product_pricing_needed"
	AvailabilityInStockPriceUnknown    AvailabilityStatus = "in_stock_price_unavailable"
	AvailabilityNotInStockPriceUnknown AvailabilityStatus = "not_in_stock_price_unavailable"

	// AvailabilityInStock is accepted by the legacy single-product intake only to be
	// redirected to the direct quotation path; it never reaches an RFP.
	AvailabilityInStock AvailabilityStatus = "in_stock"
)

// IsValid reports whether s may be stored on an RFP product line
func (s AvailabilityStatus) IsValid() bool {
	switch s {
	case AvailabilityCustomPricingNeeded, AvailabilityInStockPriceUnknown, AvailabilityNotInStockPriceUnknown:
		return true
	}
	return false
}
