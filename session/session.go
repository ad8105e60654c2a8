// Package session implements the password gate in front of the editor.
//
// This is a client-side convenience gate, not real security: the shared
// secret is compared in plaintext and the authenticated flag lives in the
// same storage the content does. Anyone with access to the database can flip
// it. Acceptable for a single-operator blog on a personal machine, and
// nothing more.
package session

import (
	"strconv"
	"time"

	"github.com/scenah/story-cli/store"
)

// Storage keys, part of the persisted schema.
const (
	authKey      = "admin_authenticated"
	loginTimeKey = "admin_login_time"
)

// TTL is how long a login stays valid before a read expires it.
const TTL = 24 * time.Hour

// DefaultPassword is the built-in shared secret, overridable per Guard.
const DefaultPassword = "scenah2024"

// Guard owns the authenticated flag and login timestamp.
type Guard struct {
	kv       store.KV
	password string
}

// NewGuard creates a Guard over the given key-value adapter. An empty
// password selects the built-in secret.
func NewGuard(kv store.KV, password string) *Guard {
	if password == "" {
		password = DefaultPassword
	}
	return &Guard{kv: kv, password: password}
}

// Login compares the attempt against the shared secret. On success the
// authenticated flag and login timestamp are persisted. There is no lockout
// and no rate limiting; failure is a plain false, not an error.
func (g *Guard) Login(attempt string) bool {
	if attempt != g.password {
		return false
	}
	ok := g.kv.Set(authKey, "true")
	return g.kv.Set(loginTimeKey, strconv.FormatInt(time.Now().UnixMilli(), 10)) && ok
}

// IsAuthenticated reports whether a valid session exists. A session older
// than TTL is expired on read: both keys are cleared and false is returned
// (a soft logout).
func (g *Guard) IsAuthenticated() bool {
	flag, ok := g.kv.Get(authKey)
	if !ok || flag != "true" {
		return false
	}
	raw, ok := g.kv.Get(loginTimeKey)
	if !ok {
		return false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		g.Logout()
		return false
	}
	if time.Since(time.UnixMilli(millis)) > TTL {
		g.Logout()
		return false
	}
	return true
}

// Logout clears both session keys unconditionally.
func (g *Guard) Logout() {
	g.kv.Delete(authKey)
	g.kv.Delete(loginTimeKey)
}
