package entity

import "time"

// Favorite закладка пользователя на объявление
type Favorite struct {
	ID         int64
	UserID     int64
	PropertyID int64
	CreatedAt  time.Time
}
