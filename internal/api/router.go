package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"brandpulse/internal/middleware"
	"brandpulse/internal/seed"
	"brandpulse/internal/services"
)

type Router struct {
	store    Store
	auth     *services.AuthService
	personas *services.PersonaService
	assets   *services.AssetService
	insights *services.InsightsService
}

func NewRouter(store Store) *Router {
	return &Router{
		store:    store,
		auth:     services.NewAuthService(store, middleware.SignToken),
		personas: services.NewPersonaService(store),
		assets:   services.NewAssetService(store),
		insights: services.NewInsightsService(store),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST

	// Everything else under /api/ rejects unauthenticated callers before
	// a handler runs; callerScope then reads the workspace off the
	// context. The exact-path auth routes above win over this prefix.
	protected := http.NewServeMux()
	protected.HandleFunc("/api/seed", rt.handleSeed)                 // POST
	protected.HandleFunc("/api/personas", rt.handlePersonas)         // GET, POST
	protected.HandleFunc("/api/personas/", rt.handlePersonaScoped)   // {id}, {id}/methods, {id}/decision
	protected.HandleFunc("/api/assets", rt.handleAssets)             // GET, POST
	protected.HandleFunc("/api/assets/", rt.handleAssetScoped)       // {id}, {id}/methods, {id}/sections, {id}/quality
	protected.HandleFunc("/api/dashboard/summary", rt.handleSummary) // GET
	protected.HandleFunc("/api/audit", rt.handleAudit)               // GET
	mux.Handle("/api/", middleware.RequireAuth(protected))
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		WorkspaceName string `json:"workspaceName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.WorkspaceName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "workspace_id": res.WorkspaceID, "user_id": res.UserID})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "workspace_id": res.WorkspaceID, "user_id": res.UserID})
}

// POST /api/seed — load the demo fixtures into the caller's workspace.
func (rt *Router) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	wid, actor, ok := callerScope(w, r)
	if !ok {
		return
	}
	fx, err := seed.Fixtures()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	personaIDs := []string{}
	for _, p := range fx.Personas {
		created, err := rt.personas.Create(wid, actor, p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		personaIDs = append(personaIDs, created.ID)
	}
	assetIDs := []string{}
	for _, a := range fx.Assets {
		created, err := rt.assets.Create(wid, actor, a)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		assetIDs = append(assetIDs, created.ID)
	}
	writeJSON(w, map[string]any{"ok": true, "personas": personaIDs, "assets": assetIDs})
}

// GET/POST /api/personas
func (rt *Router) handlePersonas(w http.ResponseWriter, r *http.Request) {
	wid, actor, ok := callerScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		personas, err := rt.personas.List(wid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"personas": personas})
	case http.MethodPost:
		var p services.Persona
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := rt.personas.Create(wid, actor, &p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, created)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// /api/personas/{id}[/methods[/{type}]|/decision]
func (rt *Router) handlePersonaScoped(w http.ResponseWriter, r *http.Request) {
	wid, actor, ok := callerScope(w, r)
	if !ok {
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/personas/"), "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			p, err := rt.personas.Get(wid, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, p)
		case http.MethodPut:
			var patch services.PersonaPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			p, err := rt.personas.Update(wid, actor, id, patch)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, p)
		case http.MethodDelete:
			if err := rt.personas.Delete(wid, actor, id); err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, map[string]any{"ok": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "methods" && r.Method == http.MethodPost:
		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := rt.personas.StartMethod(wid, actor, id, req.Type)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, p)
	case len(parts) == 3 && parts[1] == "methods" && r.Method == http.MethodPut:
		var upd services.MethodUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := rt.personas.UpdateMethod(wid, actor, id, parts[2], upd)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, p)
	case len(parts) == 2 && parts[1] == "decision" && r.Method == http.MethodGet:
		info, score, err := rt.personas.Decision(wid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"decision":         info,
			"config":           services.DecisionStatusConfigFor(info.Status),
			"validation_score": score,
		})
	default:
		http.NotFound(w, r)
	}
}

// GET/POST /api/assets
// List filters: ?status=a,b&method=x,y&coverage_min=N&coverage_max=N
func (rt *Router) handleAssets(w http.ResponseWriter, r *http.Request) {
	wid, actor, ok := callerScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		filter, err := assetFilterFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		assets, err := rt.assets.List(wid, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"assets": assets, "groups": services.GroupAssetsByStatus(assets)})
	case http.MethodPost:
		var a services.BrandAsset
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := rt.assets.Create(wid, actor, &a)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, created)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// /api/assets/{id}[/methods[/{type}]|/sections[/{sid}]|/quality|/validate]
func (rt *Router) handleAssetScoped(w http.ResponseWriter, r *http.Request) {
	wid, actor, ok := callerScope(w, r)
	if !ok {
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/assets/"), "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			a, err := rt.assets.Get(wid, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, a)
		case http.MethodPut:
			var patch services.AssetPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			a, err := rt.assets.Update(wid, actor, id, patch)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, a)
		case http.MethodDelete:
			if err := rt.assets.Delete(wid, actor, id); err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, map[string]any{"ok": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "methods" && r.Method == http.MethodPost:
		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := rt.assets.StartMethod(wid, actor, id, req.Type)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, a)
	case len(parts) == 3 && parts[1] == "methods" && r.Method == http.MethodPut:
		var upd services.MethodUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := rt.assets.UpdateMethod(wid, actor, id, parts[2], upd)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, a)
	case len(parts) == 2 && parts[1] == "sections" && r.Method == http.MethodPost:
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := rt.assets.AddSection(wid, actor, id, req.Title, req.Content)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, a)
	case len(parts) == 3 && parts[1] == "sections" && r.Method == http.MethodPut:
		var patch services.SectionPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := rt.assets.UpdateSection(wid, actor, id, parts[2], patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, a)
	case len(parts) == 2 && parts[1] == "validate" && r.Method == http.MethodPost:
		a, err := rt.assets.Validate(wid, actor, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, a)
	case len(parts) == 2 && parts[1] == "quality" && r.Method == http.MethodGet:
		q, err := rt.assets.Quality(wid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, q)
	default:
		http.NotFound(w, r)
	}
}

// GET /api/dashboard/summary
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	wid, _, ok := callerScope(w, r)
	if !ok {
		return
	}
	summary, err := rt.insights.Summary(wid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, summary)
}

// GET /api/audit
func (rt *Router) handleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, _, ok := callerScope(w, r); !ok {
		return
	}
	entries := rt.store.ListAudit()
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"time":   e.Time,
			"actor":  e.Actor,
			"action": e.Action,
			"target": e.Target,
			"note":   e.Note,
		})
	}
	writeJSON(w, map[string]any{"audit": out})
}

// callerScope pulls the workspace and actor identity off the request
// context; unauthenticated calls get a 401 and false.
func callerScope(w http.ResponseWriter, r *http.Request) (wid, actor string, ok bool) {
	wid, ok = middleware.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}
	actor, _ = middleware.UserEmailFromContext(r.Context())
	return wid, actor, true
}

func assetFilterFromQuery(r *http.Request) (services.AssetFilter, error) {
	var f services.AssetFilter
	if v := r.URL.Query().Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			f.Status = append(f.Status, services.AssetStatus(s))
		}
	}
	if v := r.URL.Query().Get("method"); v != "" {
		f.HasMethod = strings.Split(v, ",")
	}
	if v := r.URL.Query().Get("coverage_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.CoverageMin = &n
	}
	if v := r.URL.Query().Get("coverage_max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.CoverageMax = &n
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
		http.Error(w, se.Message, status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
