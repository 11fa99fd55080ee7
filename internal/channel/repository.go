package channel

import (
	"context"

	"github.com/google/uuid"

	"lockchat/internal/channel/model"
)

type ChannelRepository interface {
	CreateChannel(ctx context.Context, ch *model.Channel) error
	GetChannelByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	GetChannelByName(ctx context.Context, name string) (*model.Channel, error)
	ChannelNameExists(ctx context.Context, name string) (bool, error)
	ListChannels(ctx context.Context) ([]*model.Channel, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id uuid.UUID) (*model.Message, error)

	// ListMessagesByChannel returns messages newest first with the
	// sender relation loaded.
	ListMessagesByChannel(ctx context.Context, channelID uuid.UUID) ([]*model.Message, error)

	// UnlockMessage performs the unlock as one database transaction:
	// it locks the viewer's user row, appends the viewer to the
	// message's unlock set with a conditional array update, debits
	// the lock price and inserts a debit ledger entry. Either all of
	// it commits or none of it does. Repeated calls for the same
	// (message, viewer) pair charge at most once.
	UnlockMessage(ctx context.Context, messageID, viewerID uuid.UUID) (*UnlockResult, error)
}

// UnlockResult describes what the unlock transaction did.
type UnlockResult struct {
	Message *model.Message

	// Charged is false when the message was not locked or the viewer
	// had already paid; no balance effect happened in that case.
	Charged    bool
	NewBalance int64
}
