package dbmysql

import (
	"time"
)

type Message struct {
	MessageID      uint64    `gorm:"primaryKey;column:message_id;autoIncrement" json:"message_id"`
	SenderID       uint64    `gorm:"column:sender_id;index;not null" json:"sender_id"`
	RecipientID    uint64    `gorm:"column:recipient_id;index;not null" json:"recipient_id"`
	Content        string    `gorm:"column:content;size:1024;not null" json:"content"`
	Timestamp      time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	ConversationID uint64    `gorm:"column:conversation_id;index;not null" json:"conversation_id"`
	IsRead         bool      `gorm:"column:is_read;default:false" json:"is_read"`
}
