package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

type memUsers struct {
	users map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*entity.User{}} }

func (m *memUsers) Create(u *entity.User) error                  { m.users[u.ID] = u; return nil }
func (m *memUsers) GetByID(id string) (*entity.User, error)      { return m.users[id], nil }
func (m *memUsers) Update(u *entity.User) error                  { m.users[u.ID] = u; return nil }
func (m *memUsers) List(int, int) ([]*entity.User, error)        { return nil, nil }
func (m *memUsers) ListByManager(string) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) FindByEmail(email string) (*entity.User, error) { return m.GetByEmail(email) }

// memAudit captura entradas de auditoría; thread-safe porque el recorder
// escribe en goroutine.
type memAudit struct {
	mu      sync.Mutex
	entries []*entity.AuditLogEntry
}

func (m *memAudit) Create(e *entity.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAudit) List(repository.AuditFilter, int, int) ([]*entity.AuditLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries, nil
}

func (m *memAudit) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func jwtCfg() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "ventas-pro-test"}
}

func newAuthUC(repo *memUsers, sink *memAudit) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, audit.NewRecorder(sink, logger.Nop()), jwtCfg())
}

func noMeta() audit.Meta { return audit.Meta{} }

// El registro abierto crea siempre un sales_rep activo con password hasheada.
func TestRegister_CreaSalesRepActivo(t *testing.T) {
	repo := newMemUsers()
	uc := newAuthUC(repo, &memAudit{})

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "rep@ventas.co", Password: "clave-segura-1", Name: "Rep Nuevo",
	}, noMeta())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleSalesRep, resp.Role)
	assert.True(t, resp.IsActive)

	stored, _ := repo.GetByEmail("rep@ventas.co")
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura-1", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura-1")))
}

// Como toda creación, el registro deja exactamente una entrada CREATE sobre
// user; el actor es la cuenta recién creada.
func TestRegister_GeneraEntradaDeAuditoria(t *testing.T) {
	repo := newMemUsers()
	sink := &memAudit{}
	uc := newAuthUC(repo, sink)

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "rep@ventas.co", Password: "clave-segura-1",
	}, audit.Meta{IP: "10.0.0.9", UserAgent: "test-agent"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sink.count() == 1 },
		time.Second, 5*time.Millisecond, "la entrada debe llegar al repositorio")

	sink.mu.Lock()
	e := sink.entries[0]
	sink.mu.Unlock()
	assert.Equal(t, entity.EntityUser, e.EntityType)
	assert.Equal(t, resp.ID, e.EntityID)
	assert.Equal(t, entity.ActionCreate, e.Action)
	assert.Equal(t, resp.ID, e.PerformedBy, "el actor es la propia cuenta creada")
	assert.Equal(t, "10.0.0.9", e.IPAddress)
	assert.Equal(t, "test-agent", e.UserAgent)
}

// Un registro rechazado (email duplicado) no debe dejar entrada de auditoría.
func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newMemUsers()
	sink := &memAudit{}
	uc := newAuthUC(repo, sink)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "rep@ventas.co", Password: "clave-segura-1"}, noMeta())
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "rep@ventas.co", Password: "otra-clave-22"}, noMeta())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, sink.count(), "solo el registro exitoso se audita")
}

// Login correcto: el token lleva el user id y el rol.
func TestLogin_TokenConRol(t *testing.T) {
	repo := newMemUsers()
	uc := newAuthUC(repo, &memAudit{})
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "rep@ventas.co", Password: "clave-segura-1"}, noMeta())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "rep@ventas.co", Password: "clave-segura-1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse("secret-de-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleSalesRep, role)
}

// Password incorrecta: no autorizado.
func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newMemUsers()
	uc := newAuthUC(repo, &memAudit{})
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "rep@ventas.co", Password: "clave-segura-1"}, noMeta())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "rep@ventas.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Cuenta desactivada: no puede iniciar sesión.
func TestLogin_CuentaDesactivada(t *testing.T) {
	repo := newMemUsers()
	uc := newAuthUC(repo, &memAudit{})
	resp, err := uc.RegisterUser(dto.RegisterRequest{Email: "rep@ventas.co", Password: "clave-segura-1"}, noMeta())
	require.NoError(t, err)

	u, _ := repo.GetByID(resp.ID)
	u.IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "rep@ventas.co", Password: "clave-segura-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
