package services

// Tier is a pricing bracket mapping an inclusive range of purchasable hours
// to a fixed price.
type Tier struct {
	ID         string `json:"id"`
	MinHours   int    `json:"min_hours"`
	MaxHours   int    `json:"max_hours"`
	PriceCents int64  `json:"price_cents"`
}

// Purchasable hour bounds across all tiers.
const (
	MinPurchasableHours = 1
	MaxPurchasableHours = 1000
)

// pricingTiers is the static pricing table. Ranges are inclusive and must not
// overlap; lookup picks the first tier containing the value.
var pricingTiers = []Tier{
	{ID: "tier-1-5", MinHours: 1, MaxHours: 5, PriceCents: 6499},
	{ID: "tier-6-10", MinHours: 6, MaxHours: 10, PriceCents: 7899},
	{ID: "tier-11-20", MinHours: 11, MaxHours: 20, PriceCents: 8999},
	{ID: "tier-21-40", MinHours: 21, MaxHours: 40, PriceCents: 10499},
	{ID: "tier-41-60", MinHours: 41, MaxHours: 60, PriceCents: 12499},
	{ID: "tier-61-100", MinHours: 61, MaxHours: 100, PriceCents: 13999},
	{ID: "tier-101-150", MinHours: 101, MaxHours: 150, PriceCents: 15499},
	{ID: "tier-151-250", MinHours: 151, MaxHours: 250, PriceCents: 17499},
	{ID: "tier-251-500", MinHours: 251, MaxHours: 500, PriceCents: 19499},
	{ID: "tier-501-1000", MinHours: 501, MaxHours: 1000, PriceCents: 21499},
}

// FindTier returns the pricing tier whose range contains the given hours
// quantity, or false when no tier matches.
func FindTier(hours int) (Tier, bool) {
	for _, t := range pricingTiers {
		if hours >= t.MinHours && hours <= t.MaxHours {
			return t, true
		}
	}
	return Tier{}, false
}

// ListTiers returns a copy of the pricing table for display.
func ListTiers() []Tier {
	out := make([]Tier, len(pricingTiers))
	copy(out, pricingTiers)
	return out
}
