package repository

import (
	"context"
	"errors"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"gorm.io/gorm"
)

type ChatGormRepository struct {
	db *gorm.DB
}

func NewChatGormRepository(db *gorm.DB) *ChatGormRepository {
	return &ChatGormRepository{db: db}
}

func (r *ChatGormRepository) FindRoomByCustomerID(ctx context.Context, customerID int64) (model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ChatRoom{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ChatRoom{}, err
	}
	return room, nil
}

func (r *ChatGormRepository) FindRoomByKey(ctx context.Context, roomKey string) (model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.WithContext(ctx).Where("room_key = ?", roomKey).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ChatRoom{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ChatRoom{}, err
	}
	return room, nil
}

func (r *ChatGormRepository) CreateRoom(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	if err := r.db.WithContext(ctx).Create(&room).Error; err != nil {
		return model.ChatRoom{}, err
	}
	return room, nil
}

func (r *ChatGormRepository) TouchRoom(ctx context.Context, roomID int64) error {
	res := r.db.WithContext(ctx).Model(&model.ChatRoom{}).
		Where("id = ?", roomID).
		Update("last_message_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ChatGormRepository) ListRoomSummaries(ctx context.Context, unreadFrom model.ChatSender) ([]repo.ChatRoomSummary, error) {
	var rooms []model.ChatRoom
	err := r.db.WithContext(ctx).
		Order("last_message_at desc").
		Find(&rooms).Error
	if err != nil {
		return []repo.ChatRoomSummary{}, err
	}

	out := make([]repo.ChatRoomSummary, 0, len(rooms))
	for _, room := range rooms {
		var unread int64
		err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
			Where("room_id = ? AND sender = ? AND is_read = ?", room.ID, unreadFrom, false).
			Count(&unread).Error
		if err != nil {
			return []repo.ChatRoomSummary{}, err
		}
		out = append(out, repo.ChatRoomSummary{Room: room, UnreadCount: unread})
	}
	return out, nil
}

func (r *ChatGormRepository) CreateMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

func (r *ChatGormRepository) ListMessagesByRoomID(ctx context.Context, roomID int64) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id asc").
		Find(&msgs).Error
	if err != nil {
		return []model.ChatMessage{}, err
	}
	return msgs, nil
}

func (r *ChatGormRepository) MarkRead(ctx context.Context, roomID int64, sender model.ChatSender) error {
	return r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("room_id = ? AND sender = ? AND is_read = ?", roomID, sender, false).
		Update("is_read", true).Error
}
