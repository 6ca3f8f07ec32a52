package telegram

import (
	"context"
	"fmt"
	"log/slog"

	statsService "github.com/efrenfb/telegram-inbox-bot/internal/modules/stats/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	"github.com/efrenfb/telegram-inbox-bot/internal/shared/config"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Forwarder relays copies of stored uploads to the configured admin chat.
type Forwarder struct {
	cfg   *config.Config
	stats *statsService.Service
}

// NewForwarder creates a new forwarder
func NewForwarder(cfg *config.Config, stats *statsService.Service) *Forwarder {
	return &Forwarder{cfg: cfg, stats: stats}
}

// Forward sends the already-uploaded remote file (by file ID, no re-upload)
// to the admin with a caption naming the sender. Returns false when skipped:
// no admin configured, or auto-forward currently off. Transport failures are
// logged and swallowed; forwarding is best-effort and never rolls back the
// store or the counters.
func (f *Forwarder) Forward(ctx context.Context, g gateway, category domain.Category, fileID string, senderID int64) bool {
	if f.cfg.AdminUserID == 0 || !f.stats.ForwardEnabled() {
		return false
	}

	var err error
	switch category {
	case domain.CategoryPhoto:
		_, err = g.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  f.cfg.AdminUserID,
			Photo:   &models.InputFileString{Data: fileID},
			Caption: fmt.Sprintf("📸 Photo from %d", senderID),
		})
	case domain.CategoryDocument:
		_, err = g.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   f.cfg.AdminUserID,
			Document: &models.InputFileString{Data: fileID},
			Caption:  fmt.Sprintf("📄 File from %d", senderID),
		})
	}

	if err != nil {
		slog.Error("Failed to forward upload to admin", "category", category, "sender_id", senderID, "error", err)
	}

	return true
}
