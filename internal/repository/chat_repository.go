package repository

import (
	"context"

	"cosmeshop/internal/domain/model"
)

// 管理者向けのルーム一覧行（未読数付き）
type ChatRoomSummary struct {
	Room        model.ChatRoom `json:"room"`
	UnreadCount int64          `json:"unread_count"`
}

type ChatRepository interface {
	FindRoomByCustomerID(ctx context.Context, customerID int64) (model.ChatRoom, error)
	FindRoomByKey(ctx context.Context, roomKey string) (model.ChatRoom, error)
	CreateRoom(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error)
	TouchRoom(ctx context.Context, roomID int64) error
	// 新着順。未読数は相手側（管理者視点なら顧客発）のみ数える。
	ListRoomSummaries(ctx context.Context, unreadFrom model.ChatSender) ([]ChatRoomSummary, error)

	CreateMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error)
	ListMessagesByRoomID(ctx context.Context, roomID int64) ([]model.ChatMessage, error)
	// senderが送った未読メッセージを既読化
	MarkRead(ctx context.Context, roomID int64, sender model.ChatSender) error
}
