package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCode_RedeemableAt(t *testing.T) {
	now := time.Now()
	code := &DiscountCode{
		Code:     "SALE10",
		Amount:   10000,
		IsActive: true,
		Start:    now.Add(-time.Hour),
		End:      now.Add(time.Hour),
	}

	assert.True(t, code.RedeemableAt(now))

	// The window is inclusive at both ends.
	assert.True(t, code.RedeemableAt(code.Start))
	assert.True(t, code.RedeemableAt(code.End))

	assert.False(t, code.RedeemableAt(code.Start.Add(-time.Second)))
	assert.False(t, code.RedeemableAt(code.End.Add(time.Second)))

	// Deactivation wins regardless of the window.
	code.IsActive = false
	assert.False(t, code.RedeemableAt(now))
}
