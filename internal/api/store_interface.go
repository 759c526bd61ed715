package api

import "brandpulse/internal/services"

// Store is the persistence boundary for the dashboard. The scoring core
// never touches it; services read entity snapshots out, derive, and write
// mutations back. Both the in-memory store and the SQLite store satisfy
// it.
type Store interface {
	InsertPersona(p *services.Persona) (*services.Persona, error)
	GetPersona(id string) (*services.Persona, error)
	UpdatePersona(p *services.Persona) error
	DeletePersona(id string) error
	ListPersonasByWorkspace(wid string) ([]*services.Persona, error)

	InsertAsset(a *services.BrandAsset) (*services.BrandAsset, error)
	GetAsset(id string) (*services.BrandAsset, error)
	UpdateAsset(a *services.BrandAsset) error
	DeleteAsset(id string) error
	ListAssetsByWorkspace(wid string) ([]*services.BrandAsset, error)

	AddWorkspace(w *services.Workspace) error
	AddUser(u *services.User) error
	FindUserByEmail(email string) (*services.User, error)

	AddAudit(e services.AuditEntry)
	ListAudit() []services.AuditEntry
}

var _ Store = (*memoryStore)(nil)

// The service-facing interfaces are slices of Store.
var (
	_ services.PersonaStore  = (Store)(nil)
	_ services.AssetStore    = (Store)(nil)
	_ services.AuthStore     = (Store)(nil)
	_ services.InsightsStore = (Store)(nil)
)
