package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockchat/internal/channel"
	"lockchat/internal/channel/mocks"
	"lockchat/internal/channel/model"
	channelrepo "lockchat/internal/channel/repository"
	"lockchat/internal/user"
	usermocks "lockchat/internal/user/mocks"
	models "lockchat/internal/user/model"
	walletrepo "lockchat/internal/wallet/repository"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
)

type usecaseMocks struct {
	channelRepo *mocks.MockChannelRepository
	messageRepo *mocks.MockMessageRepository
	userRepo    *usermocks.MockUserRepository
	hub         *mocks.MockBroadcaster
}

func newTestUsecase(t *testing.T) (*ChannelUsecase, usecaseMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := usecaseMocks{
		channelRepo: mocks.NewMockChannelRepository(ctrl),
		messageRepo: mocks.NewMockMessageRepository(ctrl),
		userRepo:    usermocks.NewMockUserRepository(ctrl),
		hub:         mocks.NewMockBroadcaster(ctrl),
	}
	uc := NewChannelUsecase(m.channelRepo, m.messageRepo, m.userRepo, m.hub, logger.Logger{})
	return uc, m
}

func adminViewer() user.Viewer {
	return user.Viewer{ID: uuid.New(), Username: "admin", Role: models.RoleAdmin}
}

func userViewer() user.Viewer {
	return user.Viewer{ID: uuid.New(), Username: "alice", Role: models.RoleUser}
}

func TestChannelUsecase_CreateChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path - admin creates channel", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		admin := adminViewer()

		m.channelRepo.EXPECT().ChannelNameExists(ctx, "general").Return(false, nil)
		m.channelRepo.EXPECT().CreateChannel(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ch *model.Channel) error {
				ch.ID = uuid.New()
				return nil
			})

		dto, err := uc.CreateChannel(ctx, admin, channel.CreateChannelCommand{Name: "  general  ", Description: "town square"})
		require.NoError(t, err)
		assert.Equal(t, "general", dto.Name)
		assert.Equal(t, admin.ID, dto.CreatedBy)
	})

	t.Run("sad path - non-admin is rejected", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.CreateChannel(ctx, userViewer(), channel.CreateChannelCommand{Name: "general"})
		assert.ErrorIs(t, err, errors.ErrAdminOnly)
	})

	t.Run("sad path - blank name", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.CreateChannel(ctx, adminViewer(), channel.CreateChannelCommand{Name: "   "})
		assert.ErrorIs(t, err, errors.ErrMissingChannelName)
	})

	t.Run("sad path - duplicate name", func(t *testing.T) {
		uc, m := newTestUsecase(t)

		m.channelRepo.EXPECT().ChannelNameExists(ctx, "general").Return(true, nil)

		_, err := uc.CreateChannel(ctx, adminViewer(), channel.CreateChannelCommand{Name: "general"})
		assert.ErrorIs(t, err, errors.ErrChannelNameTaken)
	})
}

func TestChannelUsecase_SendMessage(t *testing.T) {
	ctx := context.Background()
	channelID := uuid.New()

	t.Run("happy path - broadcast payload is redacted, sender sees content", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		sender := userViewer()

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(&model.Channel{ID: channelID}, nil)
		m.messageRepo.EXPECT().CreateMessage(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msg *model.Message) error {
				msg.ID = uuid.New()
				return nil
			})

		var broadcast *channel.MessageDTO
		m.hub.EXPECT().Broadcast(channelID.String(), channel.EventMessageNew, gomock.Any()).
			Do(func(_, _ string, payload interface{}) {
				broadcast = payload.(*channel.MessageDTO)
			})

		dto, err := uc.SendMessage(ctx, sender, channel.SendMessageCommand{
			ChannelID: channelID,
			Content:   "pay to see",
			IsLocked:  true,
			LockPrice: 50,
		})
		require.NoError(t, err)

		// The author's own view carries the content.
		require.NotNil(t, dto.Content)
		assert.Equal(t, "pay to see", *dto.Content)

		// The fan-out copy does not.
		require.NotNil(t, broadcast)
		assert.Nil(t, broadcast.Content)
		assert.True(t, broadcast.IsLocked)
		assert.Equal(t, int64(50), broadcast.LockPrice)
		require.NotNil(t, broadcast.Sender)
		assert.Equal(t, sender.Username, broadcast.Sender.Username)
	})

	t.Run("happy path - unlocked message broadcast keeps content", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		sender := userViewer()

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(&model.Channel{ID: channelID}, nil)
		m.messageRepo.EXPECT().CreateMessage(ctx, gomock.Any()).Return(nil)

		var broadcast *channel.MessageDTO
		m.hub.EXPECT().Broadcast(channelID.String(), channel.EventMessageNew, gomock.Any()).
			Do(func(_, _ string, payload interface{}) {
				broadcast = payload.(*channel.MessageDTO)
			})

		_, err := uc.SendMessage(ctx, sender, channel.SendMessageCommand{ChannelID: channelID, Content: "hello"})
		require.NoError(t, err)
		require.NotNil(t, broadcast.Content)
		assert.Equal(t, "hello", *broadcast.Content)
	})

	t.Run("sad path - blank content", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.SendMessage(ctx, userViewer(), channel.SendMessageCommand{ChannelID: channelID, Content: "  "})
		assert.ErrorIs(t, err, errors.ErrMissingContent)
	})

	t.Run("sad path - negative lock price", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.SendMessage(ctx, userViewer(), channel.SendMessageCommand{ChannelID: channelID, Content: "x", LockPrice: -1})
		assert.ErrorIs(t, err, errors.ErrNegativeLockPrice)
	})

	t.Run("sad path - unknown channel", func(t *testing.T) {
		uc, m := newTestUsecase(t)

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(nil, channelrepo.ErrChannelNotFound)

		_, err := uc.SendMessage(ctx, userViewer(), channel.SendMessageCommand{ChannelID: channelID, Content: "x"})
		assert.ErrorIs(t, err, errors.ErrChannelNotFound)
	})

	t.Run("lock price is ignored when the message is not locked", func(t *testing.T) {
		uc, m := newTestUsecase(t)

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(&model.Channel{ID: channelID}, nil)
		m.messageRepo.EXPECT().CreateMessage(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msg *model.Message) error {
				assert.Zero(t, msg.LockPrice)
				return nil
			})
		m.hub.EXPECT().Broadcast(gomock.Any(), gomock.Any(), gomock.Any())

		dto, err := uc.SendMessage(ctx, userViewer(), channel.SendMessageCommand{
			ChannelID: channelID,
			Content:   "free",
			IsLocked:  false,
			LockPrice: 99,
		})
		require.NoError(t, err)
		assert.Zero(t, dto.LockPrice)
	})
}

func TestChannelUsecase_ListMessages(t *testing.T) {
	ctx := context.Background()
	channelID := uuid.New()

	t.Run("happy path - regular viewer does not trigger roster load", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(&model.Channel{ID: channelID}, nil)
		m.messageRepo.EXPECT().ListMessagesByChannel(ctx, channelID).Return([]*model.Message{
			{ID: uuid.New(), ChannelID: channelID, SenderID: uuid.New(), Content: "hi"},
		}, nil)

		dtos, err := uc.ListMessages(ctx, channelID, viewer)
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Nil(t, dtos[0].UnlockedByUsers)
	})

	t.Run("happy path - admin gets the roster projection", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		admin := adminViewer()

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(&model.Channel{ID: channelID}, nil)
		m.messageRepo.EXPECT().ListMessagesByChannel(ctx, channelID).Return([]*model.Message{
			{ID: uuid.New(), ChannelID: channelID, SenderID: uuid.New(), Content: "hi", IsLocked: true, LockPrice: 10},
		}, nil)
		m.userRepo.EXPECT().ListUsers(ctx).Return([]*models.User{
			{ID: uuid.New(), Username: "alice", Status: models.StatusActive},
		}, nil)

		dtos, err := uc.ListMessages(ctx, channelID, admin)
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		require.NotNil(t, dtos[0].NotUnlockedUsers)
		assert.Len(t, *dtos[0].NotUnlockedUsers, 1)
	})

	t.Run("sad path - unknown channel", func(t *testing.T) {
		uc, m := newTestUsecase(t)

		m.channelRepo.EXPECT().GetChannelByID(ctx, channelID).Return(nil, channelrepo.ErrChannelNotFound)

		_, err := uc.ListMessages(ctx, channelID, userViewer())
		assert.ErrorIs(t, err, errors.ErrChannelNotFound)
	})
}

func TestChannelUsecase_UnlockMessage(t *testing.T) {
	ctx := context.Background()
	messageID := uuid.New()
	channelID := uuid.New()

	t.Run("happy path - first unlock charges and broadcasts", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		m.messageRepo.EXPECT().UnlockMessage(ctx, messageID, viewer.ID).Return(&channel.UnlockResult{
			Message:    &model.Message{ID: messageID, ChannelID: channelID},
			Charged:    true,
			NewBalance: 50,
		}, nil)
		m.hub.EXPECT().Broadcast(channelID.String(), channel.EventMessageUnlock, channel.UnlockEvent{
			MessageID: messageID.String(),
			UserID:    viewer.ID.String(),
		})

		dto, err := uc.UnlockMessage(ctx, messageID, viewer)
		require.NoError(t, err)
		assert.True(t, dto.Ok)
		assert.True(t, dto.Charged)
		assert.Equal(t, int64(50), dto.NewBalance)
	})

	t.Run("happy path - repeated unlock stays silent", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		// No Broadcast expectation: an idempotent repeat must not emit.
		m.messageRepo.EXPECT().UnlockMessage(ctx, messageID, viewer.ID).Return(&channel.UnlockResult{
			Message: &model.Message{ID: messageID, ChannelID: channelID},
			Charged: false,
		}, nil)

		dto, err := uc.UnlockMessage(ctx, messageID, viewer)
		require.NoError(t, err)
		assert.True(t, dto.Ok)
		assert.False(t, dto.Charged)
	})

	t.Run("sad path - message not found", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		m.messageRepo.EXPECT().UnlockMessage(ctx, messageID, viewer.ID).Return(nil, channelrepo.ErrMessageNotFound)

		_, err := uc.UnlockMessage(ctx, messageID, viewer)
		assert.ErrorIs(t, err, errors.ErrMessageNotFound)
	})

	t.Run("sad path - insufficient funds", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		m.messageRepo.EXPECT().UnlockMessage(ctx, messageID, viewer.ID).Return(nil, walletrepo.ErrInsufficientFunds)

		_, err := uc.UnlockMessage(ctx, messageID, viewer)
		assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		uc, m := newTestUsecase(t)
		viewer := userViewer()

		m.messageRepo.EXPECT().UnlockMessage(ctx, messageID, viewer.ID).Return(nil, walletrepo.ErrUserNotFound)

		_, err := uc.UnlockMessage(ctx, messageID, viewer)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}
