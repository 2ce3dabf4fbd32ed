package entity

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	ListingStatusAvailable = "available"
	ListingStatusRented    = "rented"
)

type Listing struct {
	ID            int64
	Title         string
	Description   string
	Type          string
	Price         float64
	Deposit       float64
	Location      string
	Address       string
	Bedrooms      int
	Bathrooms     int
	Area          float64
	Floor         int
	TotalFloors   int
	Images        string
	Tags          string
	Facilities    string
	ContactName   string
	ContactPhone  string
	ContactQRCode string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ImageList возвращает список URL изображений.
// Поле Images хранится как текст: JSON-массив, список через перенос строки
// или через запятую, либо одиночный URL.
func (l *Listing) ImageList() []string {
	raw := strings.TrimSpace(l.Images)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var urls []string
		if err := json.Unmarshal([]byte(raw), &urls); err == nil {
			return urls
		}
	}

	sep := ""
	switch {
	case strings.Contains(raw, "\n"):
		sep = "\n"
	case strings.Contains(raw, ","):
		sep = ","
	}

	if sep == "" {
		return []string{raw}
	}

	parts := strings.Split(raw, sep)
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

// PrimaryImage возвращает главное изображение объявления (первое из списка)
func (l *Listing) PrimaryImage() string {
	images := l.ImageList()
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
