package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

func (a Access) String() string {
	switch a {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// Route is one entry of the access policy: every endpoint is registered
// through a Route so its requirement lives in a single table.
type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Gate builds the middleware chain an access level requires.
type Gate struct {
	authenticate gin.HandlerFunc
	requireAdmin gin.HandlerFunc
}

func NewGate(authenticate gin.HandlerFunc) *Gate {
	return &Gate{authenticate: authenticate, requireAdmin: RequireAdmin()}
}

func (g *Gate) Chain(a Access) []gin.HandlerFunc {
	switch a {
	case Authenticated:
		return []gin.HandlerFunc{g.authenticate}
	case Admin:
		return []gin.HandlerFunc{g.authenticate, g.requireAdmin}
	default:
		return nil
	}
}

// Register mounts every route on r behind its gate. Duplicate method/path
// pairs are a programming error.
func (g *Gate) Register(r gin.IRoutes, routes []Route) {
	seen := make(map[string]bool, len(routes))
	for _, rt := range routes {
		key := rt.Method + " " + rt.Path
		if seen[key] {
			panic(fmt.Sprintf("duplicate route in policy table: %s", key))
		}
		seen[key] = true

		handlers := append(g.Chain(rt.Access), rt.Handler)
		r.Handle(rt.Method, rt.Path, handlers...)
	}
}
