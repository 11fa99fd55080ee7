package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"lockchat/internal/channel"
	"lockchat/internal/channel/model"
	walletrepo "lockchat/internal/wallet/repository"
	"lockchat/pkg/logger"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrInsufficientFunds = walletrepo.ErrInsufficientFunds
)

type ChannelRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewChannelRepository(db *bun.DB, logger logger.Logger) *ChannelRepository {
	return &ChannelRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ChannelRepository) CreateChannel(ctx context.Context, ch *model.Channel) error {

	_, err := r.db.NewInsert().Model(ch).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "channelRepo.CreateChannel.Insert: ")
	}
	return nil
}

func (r *ChannelRepository) GetChannelByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {

	ch := new(model.Channel)
	err := r.db.NewSelect().Model(ch).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, errors.Wrap(err, "channelRepo.GetChannelByID.Scan: ")
	}
	return ch, nil
}

func (r *ChannelRepository) GetChannelByName(ctx context.Context, name string) (*model.Channel, error) {

	ch := new(model.Channel)
	err := r.db.NewSelect().Model(ch).Where("name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, errors.Wrap(err, "channelRepo.GetChannelByName.Scan: ")
	}
	return ch, nil
}

func (r *ChannelRepository) ChannelNameExists(ctx context.Context, name string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.Channel)(nil)).
		Where("name = ?", name).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "channelRepo.ChannelNameExists.Exists: ")
	}
	return exists, nil
}

func (r *ChannelRepository) ListChannels(ctx context.Context) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := r.db.NewSelect().Model(&channels).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "channelRepo.ListChannels.Scan: ")
	}
	return channels, nil
}

type MessageRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg *model.Message) error {

	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateMessage.Insert: ")
	}
	return nil
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {

	msg := new(model.Message)
	err := r.db.NewSelect().Model(msg).Relation("Sender").Where("message.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "messageRepo.GetMessageByID.Scan: ")
	}
	return msg, nil
}

func (r *MessageRepository) ListMessagesByChannel(ctx context.Context, channelID uuid.UUID) ([]*model.Message, error) {
	var msgs []*model.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Relation("Sender").
		Where("channel_id = ?", channelID).
		Order("message.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListMessagesByChannel.Scan: ")
	}
	return msgs, nil
}

// UnlockMessage runs the whole unlock as one database transaction.
//
// The viewer's user row is locked first, which serializes concurrent
// unlock attempts by the same viewer. The unlock-set append is a
// conditional array_append guarded by NOT (id = ANY(unlocked_by)), so
// membership is checked and recorded in a single statement: if another
// request already committed the viewer, zero rows change and no charge
// happens. Append, balance update and ledger insert commit together or
// not at all.
func (r *MessageRepository) UnlockMessage(ctx context.Context, messageID, viewerID uuid.UUID) (*channel.UnlockResult, error) {
	result := &channel.UnlockResult{}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		msg := new(model.Message)
		err := tx.NewSelect().Model(msg).Where("id = ?", messageID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMessageNotFound
			}
			return errors.Wrap(err, "messageRepo.UnlockMessage.GetMessage: ")
		}
		result.Message = msg

		if !msg.IsLocked {
			return nil
		}

		// The author never pays and never joins the unlock set.
		if msg.SenderID == viewerID {
			return nil
		}

		balance, err := lockViewerBalance(ctx, tx, viewerID)
		if err != nil {
			return err
		}

		res, err := tx.NewUpdate().
			Model((*model.Message)(nil)).
			Set("unlocked_by = array_append(unlocked_by, ?)", viewerID).
			Where("id = ?", messageID).
			Where("NOT (? = ANY(unlocked_by))", viewerID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.UnlockMessage.AppendUnlock: ")
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "messageRepo.UnlockMessage.RowsAffected: ")
		}
		if affected == 0 {
			// Already unlocked by this viewer; idempotent no-op.
			result.NewBalance = balance
			return nil
		}

		newBalance, err := walletrepo.ApplyDebit(ctx, tx, viewerID, msg.LockPrice,
			fmt.Sprintf("Unlock message %s", messageID))
		if err != nil {
			return err
		}

		msg.UnlockedBy = append(msg.UnlockedBy, viewerID.String())
		result.Charged = true
		result.NewBalance = newBalance
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func lockViewerBalance(ctx context.Context, tx bun.Tx, viewerID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.NewSelect().
		Table("users").
		Column("balance").
		Where("id = ?", viewerID).
		For("UPDATE").
		Scan(ctx, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, walletrepo.ErrUserNotFound
		}
		return 0, errors.Wrap(err, "messageRepo.UnlockMessage.LockViewer: ")
	}
	return balance, nil
}
