package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// Kind tags an inbound event with its category. Every update maps to
// exactly one kind; anything the bot does not handle is KindUnknown.
type Kind string

const (
	KindCommand  Kind = "command"
	KindCallback Kind = "callback"
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
	KindText     Kind = "text"
	KindUnknown  Kind = "unknown"
)

// Sender identifies the user behind an event.
type Sender struct {
	ID   int64
	Name string
}

// Event is the tagged union over inbound gateway updates. Exactly one of
// the payload fields is set, matching Kind.
type Event struct {
	Kind     Kind
	Command  *CommandEvent
	Callback *CallbackEvent
	Photo    *PhotoEvent
	Document *DocumentEvent
	Text     *TextEvent
}

type CommandEvent struct {
	Sender Sender
	ChatID int64
	Name   string
	Args   []string
}

type CallbackEvent struct {
	Sender    Sender
	QueryID   string
	Action    string
	ChatID    int64
	MessageID int
}

type PhotoEvent struct {
	Sender   Sender
	ChatID   int64
	FileID   string
	UniqueID string
}

type DocumentEvent struct {
	Sender Sender
	ChatID int64
	FileID string
	Name   string
	Size   int64
}

type TextEvent struct {
	Sender Sender
	ChatID int64
	Text   string
}

// classify maps a raw gateway update onto the Event union.
func classify(update *models.Update) Event {
	if update.CallbackQuery != nil {
		return classifyCallback(update.CallbackQuery)
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return Event{Kind: KindUnknown}
	}

	sender := senderOf(msg.From)

	switch {
	case len(msg.Photo) > 0:
		// Telegram lists photo sizes smallest first; take the largest.
		photo := msg.Photo[len(msg.Photo)-1]
		return Event{Kind: KindPhoto, Photo: &PhotoEvent{
			Sender:   sender,
			ChatID:   msg.Chat.ID,
			FileID:   photo.FileID,
			UniqueID: photo.FileUniqueID,
		}}
	case msg.Document != nil:
		return Event{Kind: KindDocument, Document: &DocumentEvent{
			Sender: sender,
			ChatID: msg.Chat.ID,
			FileID: msg.Document.FileID,
			Name:   msg.Document.FileName,
			Size:   msg.Document.FileSize,
		}}
	case strings.HasPrefix(msg.Text, "/"):
		name, args := parseCommand(msg.Text)
		return Event{Kind: KindCommand, Command: &CommandEvent{
			Sender: sender,
			ChatID: msg.Chat.ID,
			Name:   name,
			Args:   args,
		}}
	case msg.Text != "":
		return Event{Kind: KindText, Text: &TextEvent{
			Sender: sender,
			ChatID: msg.Chat.ID,
			Text:   msg.Text,
		}}
	default:
		return Event{Kind: KindUnknown}
	}
}

func classifyCallback(q *models.CallbackQuery) Event {
	ev := &CallbackEvent{
		Sender:  senderOf(&q.From),
		QueryID: q.ID,
		Action:  q.Data,
	}

	if q.Message.Message != nil {
		ev.ChatID = q.Message.Message.Chat.ID
		ev.MessageID = q.Message.Message.ID
	}

	return Event{Kind: KindCallback, Callback: ev}
}

// parseCommand splits "/name@bot arg ..." into a lowercased name and args.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), fields[1:]
}

func senderOf(user *models.User) Sender {
	name := user.Username
	if name == "" {
		name = user.FirstName
	}
	return Sender{ID: user.ID, Name: name}
}
