package model

import "time"

type ChatSender string

const (
	ChatSenderCustomer ChatSender = "CUSTOMER"
	ChatSenderAdmin    ChatSender = "ADMIN"
)

// 顧客1人につき1ルーム。RoomKeyはURL用のUUID。
type ChatRoom struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomKey       string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"room_key"`
	CustomerID    int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	LastMessageAt time.Time `gorm:"not null" json:"last_message_at"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

type ChatMessage struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    int64      `gorm:"not null;index" json:"room_id"`
	SenderID  int64      `gorm:"not null" json:"sender_id"`
	Sender    ChatSender `gorm:"type:varchar(20);not null" json:"sender"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
