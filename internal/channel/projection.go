package channel

import (
	"github.com/google/uuid"

	"lockchat/internal/channel/model"
	models "lockchat/internal/user/model"
)

// ProjectMessage maps a message to what the viewer may see. Content
// and image data are withheld (null, never partial) for a locked
// message unless the viewer is the sender or has paid for it.
// Metadata is always visible. roster resolves the admin-only
// unlockedByUsers/notUnlockedUsers fields and is ignored for
// non-admin viewers.
func ProjectMessage(m *model.Message, viewerID uuid.UUID, viewerIsAdmin bool, roster []*models.User) *MessageDTO {
	dto := &MessageDTO{
		ID:              m.ID,
		Channel:         m.ChannelID,
		IsLocked:        m.IsLocked,
		LockPrice:       m.LockPrice,
		CreatedAt:       m.CreatedAt,
		UnlockedByCount: len(m.UnlockedBy),
		UnlockedByIds:   append([]string{}, m.UnlockedBy...),
	}

	if m.Sender != nil {
		dto.Sender = &SenderDTO{
			ID:       m.Sender.ID,
			Username: m.Sender.Username,
			Role:     m.Sender.Role,
		}
	}

	if m.VisibleTo(viewerID) {
		content := m.Content
		dto.Content = &content
		if m.ImageData != "" {
			image := m.ImageData
			dto.ImageData = &image
		}
	}

	if viewerIsAdmin {
		unlocked := make(map[string]struct{}, len(m.UnlockedBy))
		for _, id := range m.UnlockedBy {
			unlocked[id] = struct{}{}
		}

		// Always present for admins, so an unpaid message shows
		// unlockedByUsers: [] rather than omitting the field.
		unlockedUsers := make([]*UserSummaryDTO, 0, len(unlocked))
		notUnlocked := make([]*UserSummaryDTO, 0)

		for _, u := range roster {
			summary := &UserSummaryDTO{ID: u.ID, Username: u.Username, Email: u.Email}
			if _, ok := unlocked[u.ID.String()]; ok {
				unlockedUsers = append(unlockedUsers, summary)
			} else if u.IsActive() {
				notUnlocked = append(notUnlocked, summary)
			}
		}

		dto.UnlockedByUsers = &unlockedUsers
		dto.NotUnlockedUsers = &notUnlocked
	}

	return dto
}
