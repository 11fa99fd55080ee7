package channel

import (
	"time"

	"github.com/google/uuid"

	"lockchat/internal/channel/model"
)

// Input commands
type CreateChannelCommand struct {
	Name        string
	Description string
}

type SendMessageCommand struct {
	ChannelID uuid.UUID
	Content   string
	ImageData string
	IsLocked  bool
	LockPrice int64
}

// Output DTOs
type ChannelDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SenderDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// UserSummaryDTO is the admin-facing roster entry for who has or has
// not paid for a locked message.
type UserSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type MessageDTO struct {
	ID        uuid.UUID  `json:"id"`
	Channel   uuid.UUID  `json:"channel"`
	Sender    *SenderDTO `json:"sender"`
	Content   *string    `json:"content"`
	ImageData *string    `json:"imageData"`
	IsLocked  bool       `json:"isLocked"`
	LockPrice int64      `json:"lockPrice"`
	CreatedAt time.Time  `json:"createdAt"`

	UnlockedByCount int      `json:"unlockedByCount"`
	UnlockedByIds   []string `json:"unlockedByIds"`

	// Admin-only fields. Pointers so a non-admin projection omits
	// them entirely while an admin still sees an empty array.
	UnlockedByUsers  *[]*UserSummaryDTO `json:"unlockedByUsers,omitempty"`
	NotUnlockedUsers *[]*UserSummaryDTO `json:"notUnlockedUsers,omitempty"`
}

type UnlockDTO struct {
	Ok         bool  `json:"ok"`
	Charged    bool  `json:"-"`
	NewBalance int64 `json:"-"`
}

// UnlockEvent is the message:unlock broadcast payload.
type UnlockEvent struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

func ToChannelDTO(ch *model.Channel) *ChannelDTO {
	return &ChannelDTO{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		CreatedBy:   ch.CreatedBy,
		CreatedAt:   ch.CreatedAt,
	}
}
