package actorcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Role is the privilege level carried by the authenticated actor.
type Role string

const (
	RoleBuyer Role = "BUYER"
	RoleAdmin Role = "ADMIN"
)

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   snowflake.ID
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// ActorContextKey is the request context key for the authenticated actor.
type ActorContextKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}

	value := ctx.Value(ActorContextKey{})
	if actor, ok := value.(Actor); ok && actor.ID != 0 {
		return actor, true
	}
	return Actor{}, false
}

// ParseRole normalizes a stored role value.
func ParseRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleBuyer
	}
}
