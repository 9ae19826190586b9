package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/session"
)

type fakeFetcher struct {
	usr   academia.Usuario
	err   error
	calls int
}

func (f *fakeFetcher) UsuarioDetalle(_ context.Context, id int, token string) (academia.Usuario, error) {
	f.calls++
	if f.err != nil {
		return academia.Usuario{}, f.err
	}
	return f.usr, nil
}

func testToken(t *testing.T, id int) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &session.Claims{ID: id}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func adminUser() academia.Usuario {
	return academia.Usuario{
		ID: 1, Nombre: "Ana", Apellido: "Lopez", Email: "ana@classlog.test",
		Rol: &academia.Rol{
			ID: 1, Nombre: academia.RolAdministrador, Estado: true,
			Permisos: []academia.Permiso{
				{ID: 1, Nombre: "acceso_usuarios"},
				{ID: 2, Nombre: "acceso_roles"},
			},
		},
	}
}

func TestContextInit(t *testing.T) {
	ctx := context.Background()

	t.Run("no session is anonymous", func(t *testing.T) {
		store := session.NewMemoryStore()
		fetcher := &fakeFetcher{}
		actx := NewContext(store, fetcher)

		assert.Equal(t, StateUninitialized, actx.State())
		assert.True(t, actx.Loading())

		actx.Init(ctx)

		assert.Equal(t, StateAnonymous, actx.State())
		assert.False(t, actx.Loading())
		assert.False(t, actx.IsAuthenticated())
		assert.Equal(t, 0, fetcher.calls, "no token, no fetch")
	})

	t.Run("valid session is authenticated", func(t *testing.T) {
		store := session.NewMemoryStore(session.Session{Token: testToken(t, 1), Nombre: "Ana", Apellido: "Lopez"})
		fetcher := &fakeFetcher{usr: adminUser()}
		actx := NewContext(store, fetcher)

		actx.Init(ctx)

		assert.True(t, actx.IsAuthenticated())
		usr, ok := actx.User()
		assert.True(t, ok)
		assert.Equal(t, "Ana", usr.Nombre)
		assert.Equal(t, academia.RolAdministrador, actx.RoleName())
		assert.Equal(t, 1, fetcher.calls)
	})

	t.Run("undecodable token fails closed", func(t *testing.T) {
		store := session.NewMemoryStore(session.Session{Token: "not-a-jwt"})
		fetcher := &fakeFetcher{usr: adminUser()}
		actx := NewContext(store, fetcher)

		actx.Init(ctx)

		assert.Equal(t, StateAnonymous, actx.State())
		assert.Equal(t, 0, fetcher.calls)
		_, ok := store.Read()
		assert.False(t, ok, "bad session must be cleared")
	})

	t.Run("rejected detail fetch fails closed", func(t *testing.T) {
		store := session.NewMemoryStore(session.Session{Token: testToken(t, 1)})
		fetcher := &fakeFetcher{err: errors.New("401")}
		actx := NewContext(store, fetcher)

		actx.Init(ctx)

		assert.Equal(t, StateAnonymous, actx.State())
		assert.Empty(t, actx.Token())
		_, ok := store.Read()
		assert.False(t, ok, "rejected session must be cleared")
	})
}

func TestContextLogin(t *testing.T) {
	store := session.NewMemoryStore()
	fetcher := &fakeFetcher{}
	actx := NewContext(store, fetcher)
	actx.Init(context.Background())

	usr := adminUser()
	token := testToken(t, usr.ID)
	if err := actx.Login(token, usr); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	assert.True(t, actx.IsAuthenticated())
	assert.Equal(t, token, actx.Token())
	assert.Equal(t, 0, fetcher.calls, "login must not re-fetch")

	sess, ok := store.Read()
	assert.True(t, ok)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "Ana", sess.Nombre)
	assert.Equal(t, "Lopez", sess.Apellido)
}

func TestContextLogout(t *testing.T) {
	store := session.NewMemoryStore(session.Session{Token: testToken(t, 1)})
	actx := NewContext(store, &fakeFetcher{usr: adminUser()})
	actx.Init(context.Background())
	assert.True(t, actx.IsAuthenticated())

	if err := actx.Logout(); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	assert.False(t, actx.IsAuthenticated())
	assert.Empty(t, actx.Token())
	_, ok := store.Read()
	assert.False(t, ok)

	// logging out twice is fine
	if err := actx.Logout(); err != nil {
		t.Fatalf("second Logout() failed: %v", err)
	}
	assert.False(t, actx.IsAuthenticated())
}

func TestContextPermissions(t *testing.T) {
	store := session.NewMemoryStore(session.Session{Token: testToken(t, 1)})
	actx := NewContext(store, &fakeFetcher{usr: adminUser()})
	actx.Init(context.Background())

	assert.True(t, actx.HasPermission("acceso_usuarios"))
	assert.True(t, actx.HasPermission("acceso_roles"))
	assert.False(t, actx.HasPermission("acceso_asistencias"))
	assert.False(t, actx.HasPermission(""))

	assert.True(t, actx.HasRole(academia.RolAdministrador))
	assert.False(t, actx.HasRole(academia.RolProfesor))
	assert.True(t, actx.HasAnyRole(academia.RolProfesor, academia.RolAdministrador))
	assert.False(t, actx.HasAnyRole())
}

func TestContextPermissionsAnonymous(t *testing.T) {
	actx := NewContext(session.NewMemoryStore(), &fakeFetcher{})
	actx.Init(context.Background())

	assert.False(t, actx.HasPermission("acceso_usuarios"))
	assert.False(t, actx.HasRole(academia.RolAdministrador))
	assert.Empty(t, actx.Permissions())
	assert.Equal(t, "", actx.RoleName())
}

func TestContextUserWithoutRole(t *testing.T) {
	usr := academia.Usuario{ID: 2, Nombre: "Luis", Apellido: "Mora"}
	store := session.NewMemoryStore(session.Session{Token: testToken(t, 2)})
	actx := NewContext(store, &fakeFetcher{usr: usr})
	actx.Init(context.Background())

	assert.True(t, actx.IsAuthenticated())
	assert.Equal(t, "", actx.RoleName())
	assert.False(t, actx.HasPermission("acceso_usuarios"))
}
