package usecase_test

import (
	"strings"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	users map[string]*entity.User
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUsers{users: m}
}

func (f *fakeUsers) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUsers) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUsers) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUsers) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUsers) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
func (f *fakeUsers) ListByManager(managerID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUsers) FindByEmail(email string) (*entity.User, error) { return f.GetByEmail(email) }

type fakeCompanies struct {
	items       map[string]*entity.Company
	reassignErr error
}

func newFakeCompanies(items ...*entity.Company) *fakeCompanies {
	m := make(map[string]*entity.Company)
	for _, c := range items {
		m[c.ID] = c
	}
	return &fakeCompanies{items: m}
}

func (f *fakeCompanies) Create(c *entity.Company) error { f.items[c.ID] = c; return nil }
func (f *fakeCompanies) GetByID(id string) (*entity.Company, error) {
	return f.items[id], nil
}
func (f *fakeCompanies) Update(c *entity.Company) error { f.items[c.ID] = c; return nil }
func (f *fakeCompanies) Delete(id string) error         { delete(f.items, id); return nil }
func (f *fakeCompanies) List(scope repository.OwnerScope, filter repository.CompanyFilter, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.items {
		if !scope.Contains(c.OwnerID) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCompanies) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	if f.reassignErr != nil {
		return 0, f.reassignErr
	}
	var n int64
	for _, c := range f.items {
		if c.OwnerID == fromOwnerID {
			c.OwnerID = toOwnerID
			n++
		}
	}
	return n, nil
}

type fakeContacts struct {
	items       map[string]*entity.Contact
	reassignErr error
}

func newFakeContacts(items ...*entity.Contact) *fakeContacts {
	m := make(map[string]*entity.Contact)
	for _, c := range items {
		m[c.ID] = c
	}
	return &fakeContacts{items: m}
}

func (f *fakeContacts) Create(c *entity.Contact) error { f.items[c.ID] = c; return nil }
func (f *fakeContacts) GetByID(id string) (*entity.Contact, error) {
	return f.items[id], nil
}
func (f *fakeContacts) Update(c *entity.Contact) error { f.items[c.ID] = c; return nil }
func (f *fakeContacts) Delete(id string) error         { delete(f.items, id); return nil }
func (f *fakeContacts) List(scope repository.OwnerScope, filter repository.ContactFilter, limit, offset int) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, c := range f.items {
		if scope.Contains(c.OwnerID) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeContacts) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	if f.reassignErr != nil {
		return 0, f.reassignErr
	}
	var n int64
	for _, c := range f.items {
		if c.OwnerID == fromOwnerID {
			c.OwnerID = toOwnerID
			n++
		}
	}
	return n, nil
}

type fakeDeals struct {
	items       map[string]*entity.Deal
	reassignErr error
}

func newFakeDeals(items ...*entity.Deal) *fakeDeals {
	m := make(map[string]*entity.Deal)
	for _, d := range items {
		m[d.ID] = d
	}
	return &fakeDeals{items: m}
}

func (f *fakeDeals) Create(d *entity.Deal) error { f.items[d.ID] = d; return nil }
func (f *fakeDeals) GetByID(id string) (*entity.Deal, error) {
	return f.items[id], nil
}
func (f *fakeDeals) Update(d *entity.Deal) error      { f.items[d.ID] = d; return nil }
func (f *fakeDeals) UpdateStage(d *entity.Deal) error { f.items[d.ID] = d; return nil }
func (f *fakeDeals) Delete(id string) error           { delete(f.items, id); return nil }
func (f *fakeDeals) List(scope repository.OwnerScope, filter repository.DealFilter, limit, offset int) ([]*entity.Deal, error) {
	var out []*entity.Deal
	for _, d := range f.items {
		if !scope.Contains(d.OwnerID) {
			continue
		}
		if filter.Stage != "" && d.Stage != filter.Stage {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
func (f *fakeDeals) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	if f.reassignErr != nil {
		return 0, f.reassignErr
	}
	var n int64
	for _, d := range f.items {
		if d.OwnerID == fromOwnerID {
			d.OwnerID = toOwnerID
			n++
		}
	}
	return n, nil
}
func (f *fakeDeals) PipelineSummary(scope repository.OwnerScope) ([]repository.StageTotal, error) {
	byStage := map[string]*repository.StageTotal{}
	for _, d := range f.items {
		if !scope.Contains(d.OwnerID) {
			continue
		}
		t, ok := byStage[d.Stage]
		if !ok {
			t = &repository.StageTotal{Stage: d.Stage}
			byStage[d.Stage] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(d.Amount)
	}
	var out []repository.StageTotal
	for _, t := range byStage {
		out = append(out, *t)
	}
	return out, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []*entity.AuditLogEntry
}

func (f *fakeAudit) Create(e *entity.AuditLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}
func (f *fakeAudit) List(repository.AuditFilter, int, int) ([]*entity.AuditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}
func (f *fakeAudit) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
func (f *fakeAudit) last() *entity.AuditLogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return nil
	}
	return f.entries[len(f.entries)-1]
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario organizacional compartido
//
//	m1 (sales_manager) ── r1, r2
//	m2 (sales_manager) ── r3
//	adm (admin)
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func orgUsers() *fakeUsers {
	return newFakeUsers(
		&entity.User{ID: "adm", Name: "Admin", Role: entity.RoleAdmin, IsActive: true},
		&entity.User{ID: "m1", Name: "Manager Uno", Role: entity.RoleSalesManager, IsActive: true},
		&entity.User{ID: "m2", Name: "Manager Dos", Role: entity.RoleSalesManager, IsActive: true},
		&entity.User{ID: "r1", Name: "Rep Uno", Role: entity.RoleSalesRep, ManagerID: strPtr("m1"), IsActive: true},
		&entity.User{ID: "r2", Name: "Rep Dos", Role: entity.RoleSalesRep, ManagerID: strPtr("m1"), IsActive: true},
		&entity.User{ID: "r3", Name: "Rep Tres", Role: entity.RoleSalesRep, ManagerID: strPtr("m2"), IsActive: true},
	)
}

func orgEngine(users *fakeUsers) (*access.Engine, *access.TeamResolver) {
	teams := access.NewTeamResolver(users)
	return access.NewEngine(teams), teams
}

func newRecorder(sink *fakeAudit) *audit.Recorder {
	return audit.NewRecorder(sink, logger.Nop())
}

func admin() access.Identity   { return access.NewIdentity("adm", entity.RoleAdmin, true) }

// identityFor identidad con el rol que tenga el usuario en orgUsers().
func identityFor(id string) access.Identity {
	u, _ := orgUsers().GetByID(id)
	return access.NewIdentity(u.ID, u.Role, u.IsActive)
}
func manager() access.Identity { return access.NewIdentity("m1", entity.RoleSalesManager, true) }
func rep() access.Identity     { return access.NewIdentity("r1", entity.RoleSalesRep, true) }

func noMeta() audit.Meta { return audit.Meta{IP: "127.0.0.1", UserAgent: "test"} }
