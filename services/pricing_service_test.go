package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     OrderBreakdown
	}{
		{
			name:     "under threshold pays flat shipping",
			subtotal: 80,
			want:     OrderBreakdown{Subtotal: 80, Tax: 8, Shipping: 10, Total: 98},
		},
		{
			name:     "exactly at threshold still pays shipping",
			subtotal: 100,
			want:     OrderBreakdown{Subtotal: 100, Tax: 10, Shipping: 10, Total: 120},
		},
		{
			name:     "just over threshold ships free",
			subtotal: 100.01,
			want:     OrderBreakdown{Subtotal: 100.01, Tax: 10.00, Shipping: 0, Total: 110.01},
		},
		{
			name:     "large cart ships free",
			subtotal: 250,
			want:     OrderBreakdown{Subtotal: 250, Tax: 25, Shipping: 0, Total: 275},
		},
		{
			name:     "fractional cents round half up",
			subtotal: 19.99,
			want:     OrderBreakdown{Subtotal: 19.99, Tax: 2.00, Shipping: 10, Total: 31.99},
		},
		{
			name:     "empty cart",
			subtotal: 0,
			want:     OrderBreakdown{Subtotal: 0, Tax: 0, Shipping: 10, Total: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeBreakdown(tt.subtotal))
		})
	}
}
