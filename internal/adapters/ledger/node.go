package ledger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the import ledger Graft node.
const NodeID graft.ID = "adapter.import_ledger"

func init() {
	graft.Register(graft.Node[ports.ImportLedger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportLedger, error) {
			return New(), nil
		},
	})
}
