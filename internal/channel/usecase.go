package channel

import (
	"context"

	"github.com/google/uuid"

	"lockchat/internal/user"
)

type ChannelUsecase interface {
	// CreateChannel is admin-only; channel names are unique.
	CreateChannel(ctx context.Context, creator user.Viewer, cmd CreateChannelCommand) (*ChannelDTO, error)
	ListChannels(ctx context.Context) ([]*ChannelDTO, error)

	// SendMessage persists the message and broadcasts message:new on
	// its channel with locked payloads redacted.
	SendMessage(ctx context.Context, sender user.Viewer, cmd SendMessageCommand) (*MessageDTO, error)

	// ListMessages projects every message in the channel for the
	// viewer; locked content the viewer has not paid for is withheld.
	ListMessages(ctx context.Context, channelID uuid.UUID, viewer user.Viewer) ([]*MessageDTO, error)

	// UnlockMessage charges the viewer the lock price exactly once
	// and broadcasts message:unlock. Repeated requests are no-ops.
	UnlockMessage(ctx context.Context, messageID uuid.UUID, viewer user.Viewer) (*UnlockDTO, error)
}

// Broadcaster delivers an event to the live subscribers of a channel.
// The hub implements it; usecases never see individual connections.
type Broadcaster interface {
	Broadcast(channelID, event string, payload any)
}

// Events emitted on the hub by this domain.
const (
	EventMessageNew    = "message:new"
	EventMessageUnlock = "message:unlock"
)
