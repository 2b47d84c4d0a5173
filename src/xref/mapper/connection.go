package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/xref-lsp/src/xref/entity"
	"github.com/uber/xref-lsp/src/xref/internal/errors"
)

// ContextToConnectionUUID extracts the inbound connection UUID from a context.
func ContextToConnectionUUID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(entity.ConnectionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoConnectionFoundError{}
	}
	return id, nil
}
