package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestClassify_Command(t *testing.T) {
	ev := classify(&models.Update{Message: &models.Message{
		From: &models.User{ID: 7, Username: "bob"},
		Chat: models.Chat{ID: 7},
		Text: "/GetMyID@SomeBot extra arg",
	}})

	if ev.Kind != KindCommand {
		t.Fatalf("expected command, got %v", ev.Kind)
	}
	if ev.Command.Name != "getmyid" {
		t.Errorf("expected lowercased name without bot suffix, got %q", ev.Command.Name)
	}
	if len(ev.Command.Args) != 2 || ev.Command.Args[0] != "extra" {
		t.Errorf("unexpected args %v", ev.Command.Args)
	}
	if ev.Command.Sender.ID != 7 || ev.Command.Sender.Name != "bob" {
		t.Errorf("unexpected sender %+v", ev.Command.Sender)
	}
}

func TestClassify_Text(t *testing.T) {
	ev := classify(&models.Update{Message: &models.Message{
		From: &models.User{ID: 7, FirstName: "Bob"},
		Chat: models.Chat{ID: 7},
		Text: "hello there",
	}})

	if ev.Kind != KindText {
		t.Fatalf("expected text, got %v", ev.Kind)
	}
	if ev.Text.Text != "hello there" {
		t.Errorf("unexpected text %q", ev.Text.Text)
	}
	if ev.Text.Sender.Name != "Bob" {
		t.Errorf("expected first name fallback, got %q", ev.Text.Sender.Name)
	}
}

func TestClassify_PhotoPicksLargestSize(t *testing.T) {
	ev := classify(&models.Update{Message: &models.Message{
		From: &models.User{ID: 7},
		Chat: models.Chat{ID: 7},
		Photo: []models.PhotoSize{
			{FileID: "small", FileUniqueID: "u-small"},
			{FileID: "big", FileUniqueID: "u-big"},
		},
	}})

	if ev.Kind != KindPhoto {
		t.Fatalf("expected photo, got %v", ev.Kind)
	}
	if ev.Photo.FileID != "big" || ev.Photo.UniqueID != "u-big" {
		t.Errorf("expected the largest size, got %+v", ev.Photo)
	}
}

func TestClassify_Document(t *testing.T) {
	ev := classify(&models.Update{Message: &models.Message{
		From:     &models.User{ID: 7},
		Chat:     models.Chat{ID: 7},
		Document: &models.Document{FileID: "doc-1", FileName: "report.pdf", FileSize: 1024},
	}})

	if ev.Kind != KindDocument {
		t.Fatalf("expected document, got %v", ev.Kind)
	}
	if ev.Document.Name != "report.pdf" || ev.Document.Size != 1024 {
		t.Errorf("unexpected document %+v", ev.Document)
	}
}

func TestClassify_Callback(t *testing.T) {
	ev := classify(&models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "q1",
		From: models.User{ID: 7},
		Data: "about",
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 5, Chat: models.Chat{ID: 9}},
		},
	}})

	if ev.Kind != KindCallback {
		t.Fatalf("expected callback, got %v", ev.Kind)
	}
	if ev.Callback.Action != "about" || ev.Callback.QueryID != "q1" {
		t.Errorf("unexpected callback %+v", ev.Callback)
	}
	if ev.Callback.ChatID != 9 || ev.Callback.MessageID != 5 {
		t.Errorf("expected chat/message from the original message, got %+v", ev.Callback)
	}
}

func TestClassify_Unknown(t *testing.T) {
	cases := map[string]*models.Update{
		"empty update":      {},
		"no sender":         {Message: &models.Message{Chat: models.Chat{ID: 1}, Text: "hi"}},
		"no usable payload": {Message: &models.Message{From: &models.User{ID: 7}, Chat: models.Chat{ID: 7}}},
	}

	for name, update := range cases {
		if ev := classify(update); ev.Kind != KindUnknown {
			t.Errorf("%s: expected unknown, got %v", name, ev.Kind)
		}
	}
}
