// Package metrics defines the business Prometheus metrics of the storefront API.
// Request-level metrics come from echoprometheus; everything here is registered
// with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminLoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "pending", "invalid_request" or "error"
var AdminLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// AdminRegistrationsTotal counts accepted self-registrations.
var AdminRegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_registrations_total",
		Help:      "Total number of admin registrations awaiting approval.",
	},
)

// AdminDecisionsTotal counts main-admin actions on other accounts.
// Label:
//   - action: "approve", "reject" or "delete"
var AdminDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_decisions_total",
		Help:      "Total number of approve/reject/delete decisions taken by the main admin.",
	},
	[]string{"action"},
)

// AuthRejectionsTotal counts requests stopped by the authorization gate.
// Label:
//   - reason: "missing_token", "invalid_token", "revoked" or "insufficient_role"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization gate, by reason.",
	},
	[]string{"reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful product writes.
// Label:
//   - op: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product create/update/delete operations.",
	},
	[]string{"op"},
)

// UploadsTotal counts image uploads.
// Label:
//   - result: "stored" or "rejected"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of product image uploads, by result.",
	},
	[]string{"result"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOnline is 1 while checkout is accepted and 0 while the store is offline.
var StoreOnline = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_online",
		Help:      "Whether the store currently accepts checkout (1) or not (0).",
	},
)

// SetStoreOnline updates the StoreOnline gauge.
func SetStoreOnline(online bool) {
	if online {
		StoreOnline.Set(1)
		return
	}
	StoreOnline.Set(0)
}
