package storage

import (
	"context"

	"github.com/mcoot/skyjoscore/internal/model"
)

// Storage defines the interface for session persistence. The core stays
// persistence-agnostic; implementations only need to round-trip sessions
// losslessly.
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)
	DeleteSession(ctx context.Context, code model.SessionCode) error
	SessionExists(ctx context.Context, code model.SessionCode) (bool, error)
}
