package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"lockchat/internal/channel"
	"lockchat/internal/channel/model"
	channelrepo "lockchat/internal/channel/repository"
	"lockchat/internal/user"
	models "lockchat/internal/user/model"
	walletrepo "lockchat/internal/wallet/repository"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
)

type ChannelUsecase struct {
	channelRepo channel.ChannelRepository
	messageRepo channel.MessageRepository
	userRepo    user.UserRepository
	hub         channel.Broadcaster
	logger      logger.Logger
}

func NewChannelUsecase(
	channelRepo channel.ChannelRepository,
	messageRepo channel.MessageRepository,
	userRepo user.UserRepository,
	hub channel.Broadcaster,
	logger logger.Logger,
) *ChannelUsecase {
	return &ChannelUsecase{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		hub:         hub,
		logger:      logger,
	}
}

func (uc *ChannelUsecase) CreateChannel(ctx context.Context, creator user.Viewer, cmd channel.CreateChannelCommand) (*channel.ChannelDTO, error) {
	if !creator.IsAdmin() {
		return nil, errors.ErrAdminOnly
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, errors.ErrMissingChannelName
	}

	if exists, err := uc.channelRepo.ChannelNameExists(ctx, name); err != nil {
		uc.logger.Error("database error checking channel name", "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	} else if exists {
		return nil, errors.ErrChannelNameTaken
	}

	ch := &model.Channel{
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		CreatedBy:   creator.ID,
	}
	if err := uc.channelRepo.CreateChannel(ctx, ch); err != nil {
		uc.logger.Errorf("error while saving channel in db: %v", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	return channel.ToChannelDTO(ch), nil
}

func (uc *ChannelUsecase) ListChannels(ctx context.Context) ([]*channel.ChannelDTO, error) {
	chs, err := uc.channelRepo.ListChannels(ctx)
	if err != nil {
		uc.logger.Error("failed to list channels", "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	dtos := make([]*channel.ChannelDTO, 0, len(chs))
	for _, ch := range chs {
		dtos = append(dtos, channel.ToChannelDTO(ch))
	}
	return dtos, nil
}

func (uc *ChannelUsecase) SendMessage(ctx context.Context, sender user.Viewer, cmd channel.SendMessageCommand) (*channel.MessageDTO, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, errors.ErrMissingContent
	}
	if cmd.LockPrice < 0 {
		return nil, errors.ErrNegativeLockPrice
	}

	if _, err := uc.channelRepo.GetChannelByID(ctx, cmd.ChannelID); err != nil {
		if errors.Is(err, channelrepo.ErrChannelNotFound) {
			return nil, errors.ErrChannelNotFound
		}
		uc.logger.Error("failed to load channel", "channel_id", cmd.ChannelID, "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	msg := &model.Message{
		ChannelID: cmd.ChannelID,
		SenderID:  sender.ID,
		Content:   cmd.Content,
		ImageData: cmd.ImageData,
		IsLocked:  cmd.IsLocked,
	}
	if cmd.IsLocked {
		msg.LockPrice = cmd.LockPrice
	}

	if err := uc.messageRepo.CreateMessage(ctx, msg); err != nil {
		uc.logger.Errorf("error while saving message in db: %v", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	// The insert does not load relations; attach the sender summary
	// from the authenticated caller for projection and broadcast.
	msg.Sender = &models.User{ID: sender.ID, Username: sender.Username, Role: sender.Role}

	// The broadcast audience is not identified, so the payload is
	// projected for nobody: locked content stays redacted.
	uc.hub.Broadcast(msg.ChannelID.String(), channel.EventMessageNew,
		channel.ProjectMessage(msg, uuid.Nil, false, nil))

	return channel.ProjectMessage(msg, sender.ID, false, nil), nil
}

func (uc *ChannelUsecase) ListMessages(ctx context.Context, channelID uuid.UUID, viewer user.Viewer) ([]*channel.MessageDTO, error) {
	if _, err := uc.channelRepo.GetChannelByID(ctx, channelID); err != nil {
		if errors.Is(err, channelrepo.ErrChannelNotFound) {
			return nil, errors.ErrChannelNotFound
		}
		uc.logger.Error("failed to load channel", "channel_id", channelID, "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	msgs, err := uc.messageRepo.ListMessagesByChannel(ctx, channelID)
	if err != nil {
		uc.logger.Error("failed to list messages", "channel_id", channelID, "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	// Only admins may see who has or hasn't paid, so the roster is
	// loaded for them alone.
	var roster []*models.User
	if viewer.IsAdmin() {
		roster, err = uc.userRepo.ListUsers(ctx)
		if err != nil {
			uc.logger.Error("failed to load user roster", "err", err)
			return nil, errors.ErrStorageUnavailable(err)
		}
	}

	dtos := make([]*channel.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, channel.ProjectMessage(m, viewer.ID, viewer.IsAdmin(), roster))
	}
	return dtos, nil
}

func (uc *ChannelUsecase) UnlockMessage(ctx context.Context, messageID uuid.UUID, viewer user.Viewer) (*channel.UnlockDTO, error) {
	result, err := uc.messageRepo.UnlockMessage(ctx, messageID, viewer.ID)
	if err != nil {
		switch {
		case errors.Is(err, channelrepo.ErrMessageNotFound):
			return nil, errors.ErrMessageNotFound
		case errors.Is(err, walletrepo.ErrInsufficientFunds):
			return nil, errors.ErrInsufficientFunds
		case errors.Is(err, walletrepo.ErrUserNotFound):
			return nil, errors.ErrUserNotFound
		default:
			uc.logger.Error("unlock transaction failed", "message_id", messageID, "user_id", viewer.ID, "err", err)
			return nil, errors.ErrUnlockFailed(err)
		}
	}

	// Broadcast only when this request actually performed the unlock;
	// idempotent repeats stay silent.
	if result.Charged {
		uc.hub.Broadcast(result.Message.ChannelID.String(), channel.EventMessageUnlock, channel.UnlockEvent{
			MessageID: messageID.String(),
			UserID:    viewer.ID.String(),
		})
	}

	return &channel.UnlockDTO{
		Ok:         true,
		Charged:    result.Charged,
		NewBalance: result.NewBalance,
	}, nil
}
