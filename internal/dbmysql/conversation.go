package dbmysql

import (
	"time"
)

type Conversation struct {
	ConversationID uint64     `gorm:"primaryKey;column:conversation_id;autoIncrement" json:"conversation_id"`
	CreatorID      uint64     `gorm:"column:creator_id;index;not null" json:"creator_id"`
	Creator        *Account   `gorm:"foreignKey:CreatorID;references:AccountID" json:"-"`
	Participants   []*Account `gorm:"many2many:conversation_participants;foreignKey:ConversationID;joinForeignKey:ConversationID;references:AccountID;joinReferences:AccountID" json:"participants,omitempty"`
	Messages       []Message  `gorm:"foreignKey:ConversationID" json:"-"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
