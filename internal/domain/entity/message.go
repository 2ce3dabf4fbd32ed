package entity

import "time"

const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeSystem = "system"
)

// TeamMessage сообщение в чате команды; после создания не изменяется,
// id монотонно растет и служит курсором пагинации
type TeamMessage struct {
	ID        int64
	TeamID    int64
	SenderID  int64
	Content   string
	Type      string
	CreatedAt time.Time
}

// TeamMessageView сообщение вместе с профилем отправителя
type TeamMessageView struct {
	TeamMessage
	Sender UserProfile
}

// ValidMessageType проверяет допустимость типа сообщения
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeSystem:
		return true
	}
	return false
}
