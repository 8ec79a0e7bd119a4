package booking

import (
	"testing"

	"creatorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCard = models.RateCard{
	ID:    "creator-1",
	Rates: map[string]int64{"reel": 500, "story": 300, "combo": 700},
}

func TestCalculateQuote_SumsLinesAndAddsServiceCharge(t *testing.T) {
	quote, err := CalculateQuote(map[string]int{"reel": 2, "story": 1, "combo": 0}, testCard, 99, "INR")
	require.NoError(t, err)

	assert.Equal(t, int64(1300), quote.Subtotal)
	assert.Equal(t, int64(99), quote.ServiceCharge)
	assert.Equal(t, int64(1399), quote.GrandTotal)
	assert.Equal(t, "INR", quote.Currency)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "reel", quote.Lines[0].Service)
	assert.Equal(t, int64(1000), quote.Lines[0].Amount)
	assert.Equal(t, "story", quote.Lines[1].Service)
}

func TestCalculateQuote_RecomputesWhenQuantityChanges(t *testing.T) {
	quantities := map[string]int{"reel": 1}
	first, err := CalculateQuote(quantities, testCard, 99, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(599), first.GrandTotal)

	quantities["reel"] = 3
	second, err := CalculateQuote(quantities, testCard, 99, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), second.Subtotal)
	assert.Equal(t, second.Subtotal+second.ServiceCharge, second.GrandTotal)
}

func TestCalculateQuote_GrandTotalInvariant(t *testing.T) {
	for reel := 0; reel < 4; reel++ {
		for story := 0; story < 4; story++ {
			q, err := CalculateQuote(map[string]int{"reel": reel, "story": story}, testCard, 99, "INR")
			require.NoError(t, err)
			assert.Equal(t, int64(reel*500+story*300), q.Subtotal)
			assert.Equal(t, q.Subtotal+99, q.GrandTotal)
		}
	}
}

func TestCalculateQuote_RejectsNegativeQuantity(t *testing.T) {
	_, err := CalculateQuote(map[string]int{"reel": -1}, testCard, 99, "INR")
	assert.Error(t, err)
}

func TestCalculateQuote_RejectsUnknownService(t *testing.T) {
	_, err := CalculateQuote(map[string]int{"podcast": 1}, testCard, 99, "INR")
	assert.ErrorContains(t, err, "podcast")

	// Unpriced services are fine as long as none are selected.
	q, err := CalculateQuote(map[string]int{"podcast": 0}, testCard, 99, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(99), q.GrandTotal)
}
