package cars

// Profit derives the stored profit figure from the purchase price and an
// optional sale price. No sale means no profit yet, not zero.
func Profit(purchase float64, sale *float64) *float64 {
	if sale == nil {
		return nil
	}
	p := *sale - purchase
	return &p
}
