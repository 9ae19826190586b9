// Package session persists the login session in the browser: the bearer
// token plus the two display-name fields, under fixed keys in a signed
// cookie. Nothing else survives a page reload.
package session

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const (
	cookieName = "classlog_session"

	keyToken    = "token"
	keyNombre   = "nombre"
	keyApellido = "apellido"
)

// Session is what the browser remembers between page loads. No expiry is
// tracked here; an expired token is discovered when the backend rejects it.
type Session struct {
	Token    string
	Nombre   string
	Apellido string
}

// Store reads and writes the session against an HTTP request/response pair.
type Store interface {
	Read(r *http.Request) (Session, bool)
	Save(w http.ResponseWriter, r *http.Request, s Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// CookieStore keeps the session in a signed browser cookie.
type CookieStore struct {
	inner *sessions.CookieStore
}

var _ Store = (*CookieStore)(nil)

// NewCookieStore builds a Store signing with secret. An empty secret gets a
// random key, which invalidates all sessions on restart.
func NewCookieStore(secret []byte, maxAge time.Duration) *CookieStore {
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	inner := sessions.NewCookieStore(secret)
	inner.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{inner: inner}
}

func (cs *CookieStore) Read(r *http.Request) (Session, bool) {
	// a tampered or unreadable cookie is the same as no session
	sess, err := cs.inner.Get(r, cookieName)
	if err != nil {
		return Session{}, false
	}
	token, ok := sess.Values[keyToken].(string)
	if !ok || token == "" {
		return Session{}, false
	}
	nombre, _ := sess.Values[keyNombre].(string)
	apellido, _ := sess.Values[keyApellido].(string)
	return Session{Token: token, Nombre: nombre, Apellido: apellido}, true
}

func (cs *CookieStore) Save(w http.ResponseWriter, r *http.Request, s Session) error {
	sess, _ := cs.inner.Get(r, cookieName)
	sess.Values[keyToken] = s.Token
	sess.Values[keyNombre] = s.Nombre
	sess.Values[keyApellido] = s.Apellido
	return errors.Wrap(sess.Save(r, w), "saving session cookie")
}

func (cs *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := cs.inner.Get(r, cookieName)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return errors.Wrap(sess.Save(r, w), "clearing session cookie")
}

// Bind ties a Store to one request/response pair so callers that are not
// HTTP-aware (the auth context) can read and clear the session.
func Bind(st Store, w http.ResponseWriter, r *http.Request) *BoundStore {
	return &BoundStore{store: st, w: w, r: r}
}

type BoundStore struct {
	store Store
	w     http.ResponseWriter
	r     *http.Request
}

func (b *BoundStore) Read() (Session, bool) { return b.store.Read(b.r) }
func (b *BoundStore) Save(s Session) error  { return b.store.Save(b.w, b.r, s) }
func (b *BoundStore) Clear() error          { return b.store.Clear(b.w, b.r) }
