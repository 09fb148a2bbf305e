package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_booking_conflicts_total",
			Help: "Total number of booking attempts rejected for an occupied slot",
		},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created at payment-intent time",
		},
	)

	OrdersConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_confirmed_total",
			Help: "Total number of orders settled as paid",
		},
	)

	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_emails_sent_total",
			Help: "Total number of notification emails delivered",
		},
	)

	EmailsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_emails_failed_total",
			Help: "Total number of notification emails that failed to send",
		},
	)
)
