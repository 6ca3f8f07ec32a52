package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	keywordService "github.com/efrenfb/telegram-inbox-bot/internal/modules/keyword/service"
	statsService "github.com/efrenfb/telegram-inbox-bot/internal/modules/stats/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/domain"
	uploadService "github.com/efrenfb/telegram-inbox-bot/internal/modules/upload/service"
	"github.com/efrenfb/telegram-inbox-bot/internal/shared/config"
	sharedErrors "github.com/efrenfb/telegram-inbox-bot/internal/shared/errors"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const helpText = `/start - Start bot
/help - Show help
/menu - Open menu
/getmyid - Show your user ID

Admin only:
/toggleforward - Toggle auto-forward
/getstats - Show bot stats`

// gateway is the slice of the bot API the handlers use. *bot.Bot satisfies it.
type gateway interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type commandRoute struct {
	handler   func(ctx context.Context, g gateway, cmd *CommandEvent)
	adminOnly bool
}

// Handler classifies inbound updates and routes each to exactly one handler
type Handler struct {
	cfg       *config.Config
	uploads   *uploadService.Service
	keywords  *keywordService.Service
	stats     *statsService.Service
	forwarder *Forwarder
	routes    map[string]commandRoute
	client    *http.Client
}

// New creates a new Telegram handler
func New(cfg *config.Config, uploads *uploadService.Service, keywords *keywordService.Service, stats *statsService.Service, forwarder *Forwarder) *Handler {
	h := &Handler{
		cfg:       cfg,
		uploads:   uploads,
		keywords:  keywords,
		stats:     stats,
		forwarder: forwarder,
		client:    &http.Client{},
	}

	h.routes = map[string]commandRoute{
		"start":         {handler: h.handleStart},
		"help":          {handler: h.handleHelp},
		"menu":          {handler: h.handleMenu},
		"getmyid":       {handler: h.handleGetMyID},
		"toggleforward": {handler: h.handleToggleForward, adminOnly: true},
		"getstats":      {handler: h.handleGetStats, adminOnly: true},
	}

	return h
}

// HandleUpdate is the bot's default handler; it receives every update.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.Dispatch(ctx, b, update)
}

// Dispatch classifies one update and invokes the single matching handler.
// Handler panics are recovered here so one bad event cannot take down the
// delivery loop.
func (h *Handler) Dispatch(ctx context.Context, g gateway, update *models.Update) {
	ev := Event{Kind: KindUnknown}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from handler panic", "kind", ev.Kind, "panic", r)
		}
	}()

	ev = classify(update)

	switch ev.Kind {
	case KindCommand:
		h.routeCommand(ctx, g, ev.Command)
	case KindCallback:
		h.handleCallback(ctx, g, ev.Callback)
	case KindPhoto:
		h.handlePhoto(ctx, g, ev.Photo)
	case KindDocument:
		h.handleDocument(ctx, g, ev.Document)
	case KindText:
		h.handleKeyword(ctx, g, ev.Text)
	case KindUnknown:
		// Unmatched event categories are dropped without a reply.
	}
}

// isAdmin is true iff an admin identity is configured and matches the sender.
func isAdmin(adminID, senderID int64) bool {
	return adminID != 0 && senderID == adminID
}

func (h *Handler) routeCommand(ctx context.Context, g gateway, cmd *CommandEvent) {
	route, ok := h.routes[cmd.Name]
	if !ok {
		return
	}

	if route.adminOnly && !isAdmin(h.cfg.AdminUserID, cmd.Sender.ID) {
		h.reply(ctx, g, cmd.ChatID, "❌ Admin only command.")
		return
	}

	route.handler(ctx, g, cmd)
}

func (h *Handler) handleStart(ctx context.Context, g gateway, cmd *CommandEvent) {
	h.reply(ctx, g, cmd.ChatID, "✅ Bot is running!\nType /help to see available commands.")
}

func (h *Handler) handleHelp(ctx context.Context, g gateway, cmd *CommandEvent) {
	h.reply(ctx, g, cmd.ChatID, helpText)
}

func (h *Handler) handleMenu(ctx context.Context, g gateway, cmd *CommandEvent) {
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "ℹ About", CallbackData: "about"}},
			{{Text: "📞 Contact", CallbackData: "contact"}},
		},
	}

	if _, err := g.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      cmd.ChatID,
		Text:        "📋 Menu",
		ReplyMarkup: keyboard,
	}); err != nil {
		slog.Error("Failed to send menu", "chat_id", cmd.ChatID, "error", err)
	}
}

func (h *Handler) handleGetMyID(ctx context.Context, g gateway, cmd *CommandEvent) {
	h.replyMarkdown(ctx, g, cmd.ChatID, fmt.Sprintf("🆔 Your ID: `%d`", cmd.Sender.ID))
}

func (h *Handler) handleToggleForward(ctx context.Context, g gateway, cmd *CommandEvent) {
	enabled := h.stats.ToggleForward()
	h.reply(ctx, g, cmd.ChatID, fmt.Sprintf("Auto-forward %s", lo.Ternary(enabled, "✅ ON", "❌ OFF")))
}

func (h *Handler) handleGetStats(ctx context.Context, g gateway, cmd *CommandEvent) {
	snap := h.stats.Snapshot()
	h.reply(ctx, g, cmd.ChatID, fmt.Sprintf("📊 Stats\nPhotos: %d\nFiles: %d", snap.Photos, snap.Documents))
}

func (h *Handler) handleCallback(ctx context.Context, g gateway, ev *CallbackEvent) {
	if _, err := g.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: ev.QueryID}); err != nil {
		slog.Error("Failed to answer callback query", "query_id", ev.QueryID, "error", err)
	}

	var text string
	switch ev.Action {
	case "about":
		text = "🤖 Telegram Automation Bot\nDeveloped by Efren"
	case "contact":
		text = "📞 Contact: @your_username"
	default:
		return
	}

	if _, err := g.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
		Text:      text,
	}); err != nil {
		slog.Error("Failed to edit message", "chat_id", ev.ChatID, "message_id", ev.MessageID, "error", err)
	}
}

func (h *Handler) handlePhoto(ctx context.Context, g gateway, ev *PhotoEvent) {
	stored, err := h.uploads.Store(ctx, domain.CategoryPhoto, ev.Sender.ID, ev.UniqueID, 0, h.fetcher(g, ev.FileID))
	if err != nil {
		h.replyStoreError(ctx, g, ev.ChatID, ev.Sender.ID, err)
		return
	}

	slog.Info("Photo received", "sender", ev.Sender.Name, "sender_id", ev.Sender.ID, "file", stored.Name)

	h.forwarder.Forward(ctx, g, domain.CategoryPhoto, ev.FileID, ev.Sender.ID)
	h.replyMarkdown(ctx, g, ev.ChatID, fmt.Sprintf("📸 Saved as `%s`", stored.Name))
}

func (h *Handler) handleDocument(ctx context.Context, g gateway, ev *DocumentEvent) {
	stored, err := h.uploads.Store(ctx, domain.CategoryDocument, ev.Sender.ID, ev.Name, ev.Size, h.fetcher(g, ev.FileID))
	if err != nil {
		h.replyStoreError(ctx, g, ev.ChatID, ev.Sender.ID, err)
		return
	}

	slog.Info("Document received", "sender", ev.Sender.Name, "sender_id", ev.Sender.ID, "file", stored.Name)

	h.forwarder.Forward(ctx, g, domain.CategoryDocument, ev.FileID, ev.Sender.ID)
	h.replyMarkdown(ctx, g, ev.ChatID, fmt.Sprintf("📄 Saved `%s`", stored.Name))
}

func (h *Handler) handleKeyword(ctx context.Context, g gateway, ev *TextEvent) {
	if reply, ok := h.keywords.Match(ev.Text); ok {
		slog.Info("Keyword matched", "sender", ev.Sender.Name, "text", ev.Text)
		h.reply(ctx, g, ev.ChatID, reply)
		return
	}

	h.reply(ctx, g, ev.ChatID, "Got your message!")
}

// fetcher resolves a remote file ID to its download stream.
func (h *Handler) fetcher(g gateway, fileID string) uploadService.FetchFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		f, err := g.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
		if err != nil {
			return nil, oops.With("file_id", fileID, "context", "failed to resolve file").Wrap(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.FileDownloadLink(f), nil)
		if err != nil {
			return nil, oops.With("file_id", fileID, "context", "failed to build download request").Wrap(err)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, oops.With("file_id", fileID, "context", "failed to download file").Wrap(err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, oops.With("file_id", fileID, "status", resp.StatusCode).Errorf("unexpected download status")
		}

		return resp.Body, nil
	}
}

func (h *Handler) replyStoreError(ctx context.Context, g gateway, chatID, senderID int64, err error) {
	if errors.Is(err, sharedErrors.ErrFileTooLarge) {
		h.reply(ctx, g, chatID, "⚠️ File too large.")
		return
	}

	slog.Error("Failed to store upload", "sender_id", senderID, "error", err)
	h.reply(ctx, g, chatID, "⚠️ Failed to save your file. Please try again.")
}

func (h *Handler) reply(ctx context.Context, g gateway, chatID int64, text string) {
	if _, err := g.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) replyMarkdown(ctx context.Context, g gateway, chatID int64, text string) {
	if _, err := g.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
