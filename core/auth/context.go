// Package auth is the single source of truth for "who is logged in and what
// can they do". A Context is built from the stored session and the backend's
// user detail endpoint; everything downstream (route guards, navigation)
// asks it, never the session directly.
package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/session"
)

// State of the context lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAnonymous
	StateAuthenticated
)

// SessionStore is the request-bound session surface the context needs.
// Satisfied by session.Bind(...) and session.MemoryStore.
type SessionStore interface {
	Read() (session.Session, bool)
	Save(session.Session) error
	Clear() error
}

// DetailFetcher loads the authenticated user's detail, role included.
type DetailFetcher interface {
	UsuarioDetalle(ctx context.Context, id int, token string) (academia.Usuario, error)
}

// Context carries the current identity, role and permission set. It is not
// safe for concurrent use; each request builds its own.
type Context struct {
	store   SessionStore
	fetcher DetailFetcher

	state       State
	token       string
	user        *academia.Usuario
	role        *academia.Rol
	permissions []string
}

func NewContext(store SessionStore, fetcher DetailFetcher) *Context {
	return &Context{store: store, fetcher: fetcher, state: StateUninitialized}
}

// Init resolves the stored session into an authenticated identity. Any
// failure (missing token, undecodable payload, rejected detail fetch)
// silently demotes to Anonymous and clears the stored session: an invalid
// session must be indistinguishable from never having logged in.
func (c *Context) Init(ctx context.Context) {
	c.state = StateLoading

	sess, ok := c.store.Read()
	if !ok || sess.Token == "" {
		c.becomeAnonymous(false)
		return
	}

	claims, err := session.DecodeClaims(sess.Token)
	if err != nil {
		c.becomeAnonymous(true)
		return
	}

	usr, err := c.fetcher.UsuarioDetalle(ctx, claims.UsuarioID(), sess.Token)
	if err != nil {
		c.becomeAnonymous(true)
		return
	}

	c.setAuthenticated(sess.Token, usr)
}

// Login persists the session and sets the in-memory state directly from the
// login response; no re-fetch happens here.
func (c *Context) Login(token string, usr academia.Usuario) error {
	sess := session.Session{Token: token, Nombre: usr.Nombre, Apellido: usr.Apellido}
	if err := c.store.Save(sess); err != nil {
		return errors.Wrap(err, "persisting session")
	}
	c.setAuthenticated(token, usr)
	return nil
}

// Logout clears the stored session and resets the in-memory state. Safe to
// call any number of times.
func (c *Context) Logout() error {
	err := c.store.Clear()
	c.state = StateAnonymous
	c.token = ""
	c.user = nil
	c.role = nil
	c.permissions = nil
	return errors.Wrap(err, "clearing session")
}

func (c *Context) becomeAnonymous(clearStore bool) {
	if clearStore {
		_ = c.store.Clear()
	}
	c.state = StateAnonymous
	c.token = ""
	c.user = nil
	c.role = nil
	c.permissions = nil
}

func (c *Context) setAuthenticated(token string, usr academia.Usuario) {
	c.state = StateAuthenticated
	c.token = token
	c.user = &usr
	c.role = usr.Rol
	if usr.Rol != nil {
		c.permissions = usr.Rol.PermisoNombres()
	} else {
		c.permissions = nil
	}
}

func (c *Context) State() State          { return c.state }
func (c *Context) Loading() bool         { return c.state == StateLoading || c.state == StateUninitialized }
func (c *Context) IsAuthenticated() bool { return c.state == StateAuthenticated }

// Token returns the bearer token of the authenticated session, or "".
func (c *Context) Token() string { return c.token }

// User returns the authenticated user, if any.
func (c *Context) User() (academia.Usuario, bool) {
	if c.user == nil {
		return academia.Usuario{}, false
	}
	return *c.user, true
}

// RoleName returns the current role's name, or "".
func (c *Context) RoleName() string {
	if c.role == nil {
		return ""
	}
	return c.role.Nombre
}

// Permissions returns a copy of the held permission tags.
func (c *Context) Permissions() []string {
	return append([]string(nil), c.permissions...)
}

// HasPermission reports whether the current role holds the named permission
// tag. Exact match, no hierarchy; always false for an anonymous context.
// A linear scan is fine at tens of permissions.
func (c *Context) HasPermission(name string) bool {
	for _, p := range c.permissions {
		if p == name {
			return true
		}
	}
	return false
}

// HasRole reports whether the current role name matches exactly.
func (c *Context) HasRole(name string) bool {
	return c.role != nil && c.role.Nombre == name
}

// HasAnyRole reports whether the current role name is one of names.
func (c *Context) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if c.HasRole(n) {
			return true
		}
	}
	return false
}
