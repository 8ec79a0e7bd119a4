package booking

import (
	"fmt"
	"sort"

	"creatorhub/models"
)

// CalculateQuote derives the price of the selected services from a rate card.
//
//	subtotal   = Σ quantity × unitPrice
//	grandTotal = subtotal + serviceCharge
//
// Services with a zero quantity are left out of the lines. A positive quantity for a
// service the rate card does not list is an error rather than a free item.
func CalculateQuote(quantities map[string]int, card models.RateCard, serviceCharge int64, currency string) (models.Quote, error) {
	if serviceCharge < 0 {
		return models.Quote{}, fmt.Errorf("service charge cannot be negative")
	}

	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	sort.Strings(names)

	quote := models.Quote{
		Lines:         []models.QuoteLine{},
		ServiceCharge: serviceCharge,
		Currency:      currency,
	}
	for _, name := range names {
		qty := quantities[name]
		if qty < 0 {
			return models.Quote{}, fmt.Errorf("quantity for %s cannot be negative", name)
		}
		if qty == 0 {
			continue
		}
		price, ok := card.Rates[name]
		if !ok {
			return models.Quote{}, fmt.Errorf("service %q is not offered", name)
		}
		amount := int64(qty) * price
		quote.Lines = append(quote.Lines, models.QuoteLine{
			Service:   name,
			Quantity:  qty,
			UnitPrice: price,
			Amount:    amount,
		})
		quote.Subtotal += amount
	}
	quote.GrandTotal = quote.Subtotal + serviceCharge
	return quote, nil
}
