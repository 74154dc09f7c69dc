// internal/handlers/tenantinfo.go
//
// Read-only view of the bound tenant.  Downstream front-ends call this
// to learn which site they are serving; the response deliberately
// omits billing internals.
package handlers

import (
	"net/http"

	"github.com/canopysites/canopy/internal/respond"
	"github.com/canopysites/canopy/internal/tenant"
)

type tenantView struct {
	ID              int64             `json:"id"`
	Slug            string            `json:"slug"`
	Status          tenant.Status     `json:"status"`
	DefaultLanguage string            `json:"default_language"`
	ResolvedBy      tenant.Provenance `json:"resolved_by"`
}

// TenantInfo serves GET /api/tenant.
func TenantInfo(w http.ResponseWriter, r *http.Request) {
	rc := tenant.FromContext(r.Context())
	if rc == nil || rc.Platform() {
		respond.Error(w, http.StatusBadRequest,
			"NO_TENANT_CONTEXT", "this endpoint requires a tenant-bound request")
		return
	}

	t := rc.Tenant
	respond.JSON(w, http.StatusOK, tenantView{
		ID:              t.ID,
		Slug:            t.Slug,
		Status:          t.Status,
		DefaultLanguage: t.DefaultLanguage,
		ResolvedBy:      rc.ResolvedBy,
	})
}
