// internal/handlers/domains.go
//
// Admin API for domain bindings.
//
// Context
// -------
// Mounted under /api/admin/domains, behind the full guard chain, so by
// the time these handlers run the request is bound to a tenant and the
// caller passed isolation and subscription checks.  Handlers therefore
// scope every query by the bound tenant id and never read tenant
// signals from headers themselves.
//
// Routes
// ------
//	GET    /api/admin/domains            – list active bindings
//	POST   /api/admin/domains            – add a binding (optionally probed)
//	DELETE /api/admin/domains/{id}       – soft-delete a binding
//	PUT    /api/admin/domains/{id}/primary – promote to primary
//	POST   /api/admin/domains/check      – probe candidate hosts
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/canopysites/canopy/internal/domaincheck"
	"github.com/canopysites/canopy/internal/respond"
	"github.com/canopysites/canopy/internal/tenant"
)

// Domains bundles the domain-management endpoints.
type Domains struct {
	dir     *tenant.Directory
	checker *domaincheck.Checker
}

// NewDomains wires the handler set.
func NewDomains(dir *tenant.Directory, checker *domaincheck.Checker) *Domains {
	return &Domains{dir: dir, checker: checker}
}

// Mount registers the routes on r.
func (h *Domains) Mount(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/{id}", h.remove)
	r.Put("/{id}/primary", h.setPrimary)
	r.Post("/check", h.check)
}

// boundTenant returns the tenant id the middleware attached, or writes
// a 400 and returns false.  Platform context has no tenant to manage.
func boundTenant(w http.ResponseWriter, r *http.Request) (int64, bool) {
	rc := tenant.FromContext(r.Context())
	if rc == nil || rc.Platform() {
		respond.Error(w, http.StatusBadRequest,
			"NO_TENANT_CONTEXT", "this endpoint requires a tenant-bound request")
		return 0, false
	}
	return *rc.TenantID, true
}

func (h *Domains) list(w http.ResponseWriter, r *http.Request) {
	tid, ok := boundTenant(w, r)
	if !ok {
		return
	}

	rows, err := h.dir.DomainsForTenant(r.Context(), tid)
	if err != nil {
		zap.S().Errorw("domain list failed", "tenant_id", tid, "err", err)
		respond.Error(w, http.StatusInternalServerError,
			"STORE_ERROR", "could not list domains")
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

type addDomainRequest struct {
	Domain string `json:"domain"`
	Type   string `json:"type"` // CUSTOM or SUBDOMAIN
}

func (h *Domains) add(w http.ResponseWriter, r *http.Request) {
	tid, ok := boundTenant(w, r)
	if !ok {
		return
	}

	var req addDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "BAD_BODY", "invalid JSON body")
		return
	}

	typ := tenant.DomainType(req.Type)
	if typ != tenant.DomainCustom && typ != tenant.DomainSubdomain {
		respond.Error(w, http.StatusBadRequest, "BAD_DOMAIN_TYPE",
			"type must be CUSTOM or SUBDOMAIN")
		return
	}

	d, err := h.dir.AddDomain(r.Context(), tid, req.Domain, typ)
	if err != nil {
		if re := tenant.AsResolveError(err); re != nil {
			respond.Error(w, http.StatusBadRequest, string(re.Code), re.Message)
			return
		}
		zap.S().Errorw("domain add failed", "tenant_id", tid, "err", err)
		respond.Error(w, http.StatusConflict,
			"DOMAIN_CONFLICT", "domain already bound or could not be added")
		return
	}
	respond.JSON(w, http.StatusCreated, d)
}

func (h *Domains) remove(w http.ResponseWriter, r *http.Request) {
	tid, ok := boundTenant(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "BAD_ID", "domain id must be numeric")
		return
	}

	switch err := h.dir.RemoveDomain(r.Context(), tid, id); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, tenant.ErrLastDomain):
		respond.Error(w, http.StatusConflict, "LAST_DOMAIN",
			"the last active domain cannot be removed")
	case errors.Is(err, tenant.ErrDomainNotOwned):
		respond.Error(w, http.StatusNotFound, "DOMAIN_NOT_FOUND",
			"no such active domain for this tenant")
	default:
		zap.S().Errorw("domain remove failed", "tenant_id", tid, "domain_id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError,
			"STORE_ERROR", "could not remove domain")
	}
}

func (h *Domains) setPrimary(w http.ResponseWriter, r *http.Request) {
	tid, ok := boundTenant(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "BAD_ID", "domain id must be numeric")
		return
	}

	switch err := h.dir.SetPrimaryDomain(r.Context(), tid, id); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, tenant.ErrDomainNotOwned):
		respond.Error(w, http.StatusNotFound, "DOMAIN_NOT_FOUND",
			"no such active domain for this tenant")
	default:
		zap.S().Errorw("domain promote failed", "tenant_id", tid, "domain_id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError,
			"STORE_ERROR", "could not set primary domain")
	}
}

type checkRequest struct {
	Hosts []string `json:"hosts"`
}

func (h *Domains) check(w http.ResponseWriter, r *http.Request) {
	if _, ok := boundTenant(w, r); !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Hosts) == 0 {
		respond.Error(w, http.StatusBadRequest, "BAD_BODY",
			"body must carry a non-empty hosts array")
		return
	}
	if len(req.Hosts) > 20 {
		respond.Error(w, http.StatusBadRequest, "TOO_MANY_HOSTS",
			"at most 20 hosts per check")
		return
	}

	respond.JSON(w, http.StatusOK, h.checker.ProbeAll(r.Context(), req.Hosts))
}
