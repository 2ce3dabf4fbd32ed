package entity

import "time"

type User struct {
	ID        int64
	OpenID    string
	Nickname  string
	Avatar    string
	Campus    string
	Motto     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfile публичная часть профиля, встраиваемая в ответы по командам
type UserProfile struct {
	ID       int64
	Nickname string
	Avatar   string
	Campus   string
}

// Profile возвращает публичную часть профиля
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Campus:   u.Campus,
	}
}
