package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/google/uuid"
)

type ChatUsecase struct {
	chats repo.ChatRepository
	users repo.UserRepository
}

func NewChatUsecase(chats repo.ChatRepository, users repo.UserRepository) *ChatUsecase {
	return &ChatUsecase{chats: chats, users: users}
}

type SendMessageInput struct {
	Body string `json:"body"`
}

type ChatRoomOutput struct {
	Room     model.ChatRoom      `json:"room"`
	Messages []model.ChatMessage `json:"messages"`
}

const maxMessageLength = 2000

// 顧客が自分のルームを開く。なければ作る。
// 開いた時点で管理者発の未読を既読にする。
func (u *ChatUsecase) OpenMyRoom(ctx context.Context, actor Actor) (ChatRoomOutput, error) {
	room, err := u.chats.FindRoomByCustomerID(ctx, actor.UserID)
	if err == repo.ErrNotFound {
		room, err = u.chats.CreateRoom(ctx, model.ChatRoom{
			RoomKey:       uuid.NewString(),
			CustomerID:    actor.UserID,
			LastMessageAt: time.Now(),
		})
	}
	if err != nil {
		return ChatRoomOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.chats.MarkRead(ctx, room.ID, model.ChatSenderAdmin); err != nil {
		return ChatRoomOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	messages, err := u.chats.ListMessagesByRoomID(ctx, room.ID)
	if err != nil {
		return ChatRoomOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ChatRoomOutput{Room: room, Messages: messages}, nil
}

// 顧客がメッセージを送る
func (u *ChatUsecase) SendAsCustomer(ctx context.Context, actor Actor, in SendMessageInput) (model.ChatMessage, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return model.ChatMessage{}, NewHTTPError(http.StatusBadRequest, "message body required")
	}
	if len(body) > maxMessageLength {
		return model.ChatMessage{}, NewHTTPError(http.StatusBadRequest, "message too long")
	}

	room, err := u.chats.FindRoomByCustomerID(ctx, actor.UserID)
	if err == repo.ErrNotFound {
		room, err = u.chats.CreateRoom(ctx, model.ChatRoom{
			RoomKey:       uuid.NewString(),
			CustomerID:    actor.UserID,
			LastMessageAt: time.Now(),
		})
	}
	if err != nil {
		return model.ChatMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.appendMessage(ctx, room, actor.UserID, model.ChatSenderCustomer, body)
}

// 管理者向けのルーム一覧。顧客発の未読数つき、新着順。
func (u *ChatUsecase) ListRooms(ctx context.Context, actor Actor) ([]repo.ChatRoomSummary, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	summaries, err := u.chats.ListRoomSummaries(ctx, model.ChatSenderCustomer)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return summaries, nil
}

// 管理者がルームを開く。顧客発の未読を既読にする。
func (u *ChatUsecase) OpenRoom(ctx context.Context, actor Actor, roomKey string) (ChatRoomOutput, error) {
	if !actor.IsAdmin() {
		return ChatRoomOutput{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	room, err := u.findRoomByKey(ctx, roomKey)
	if err != nil {
		return ChatRoomOutput{}, err
	}

	if err := u.chats.MarkRead(ctx, room.ID, model.ChatSenderCustomer); err != nil {
		return ChatRoomOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	messages, err := u.chats.ListMessagesByRoomID(ctx, room.ID)
	if err != nil {
		return ChatRoomOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ChatRoomOutput{Room: room, Messages: messages}, nil
}

// 管理者が返信する
func (u *ChatUsecase) SendAsAdmin(ctx context.Context, actor Actor, roomKey string, in SendMessageInput) (model.ChatMessage, error) {
	if !actor.IsAdmin() {
		return model.ChatMessage{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return model.ChatMessage{}, NewHTTPError(http.StatusBadRequest, "message body required")
	}
	if len(body) > maxMessageLength {
		return model.ChatMessage{}, NewHTTPError(http.StatusBadRequest, "message too long")
	}

	room, err := u.findRoomByKey(ctx, roomKey)
	if err != nil {
		return model.ChatMessage{}, err
	}

	return u.appendMessage(ctx, room, actor.UserID, model.ChatSenderAdmin, body)
}

func (u *ChatUsecase) findRoomByKey(ctx context.Context, roomKey string) (model.ChatRoom, error) {
	if strings.TrimSpace(roomKey) == "" {
		return model.ChatRoom{}, NewHTTPError(http.StatusBadRequest, "invalid room key")
	}
	room, err := u.chats.FindRoomByKey(ctx, roomKey)
	if err == repo.ErrNotFound {
		return model.ChatRoom{}, NewHTTPError(http.StatusNotFound, "room not found")
	}
	if err != nil {
		return model.ChatRoom{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return room, nil
}

func (u *ChatUsecase) appendMessage(ctx context.Context, room model.ChatRoom, senderID int64, sender model.ChatSender, body string) (model.ChatMessage, error) {
	msg, err := u.chats.CreateMessage(ctx, model.ChatMessage{
		RoomID:   room.ID,
		SenderID: senderID,
		Sender:   sender,
		Body:     body,
	})
	if err != nil {
		return model.ChatMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.chats.TouchRoom(ctx, room.ID); err != nil {
		return model.ChatMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return msg, nil
}
