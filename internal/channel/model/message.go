package model

import (
	"time"

	"github.com/google/uuid"

	user "lockchat/internal/user/model"
)

type Message struct {
	ID        uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	ChannelID uuid.UUID `bun:",notnull,type:uuid"`
	Channel   *Channel  `bun:"rel:belongs-to,join:channel_id=id"`

	SenderID uuid.UUID  `bun:",notnull,type:uuid"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	Content string `bun:",notnull"`

	// ImageData carries an optional embedded media payload (base64).
	// It follows the same redaction rule as Content when locked.
	ImageData string `bun:",null"`

	// IsLocked is immutable after creation. LockPrice is meaningful
	// only when IsLocked is true.
	IsLocked  bool  `bun:",notnull,default:false"`
	LockPrice int64 `bun:",notnull,default:0"`

	// UnlockedBy is a set of user ids, append-only. The repository
	// enforces set semantics with a conditional array_append so a
	// user id never appears twice.
	UnlockedBy []string `bun:",array,type:uuid[],default:'{}'"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// UnlockedFor reports whether viewerID is in the unlock set.
// Authorship is checked separately; the author never joins the set.
func (m *Message) UnlockedFor(viewerID uuid.UUID) bool {
	id := viewerID.String()
	for _, u := range m.UnlockedBy {
		if u == id {
			return true
		}
	}
	return false
}

// VisibleTo reports whether viewerID may read the message payload.
func (m *Message) VisibleTo(viewerID uuid.UUID) bool {
	if !m.IsLocked {
		return true
	}
	if m.SenderID == viewerID {
		return true
	}
	return m.UnlockedFor(viewerID)
}
