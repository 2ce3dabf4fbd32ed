package dto

import (
	"time"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит детали ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UserDTO представляет пользователя (для владельца профиля)
type UserDTO struct {
	ID       int64  `json:"id"`
	OpenID   string `json:"open_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Campus   string `json:"campus"`
	Motto    string `json:"motto"`
}

// TeamMemberDTO представляет участника команды
type TeamMemberDTO struct {
	ID       int64     `json:"id"`
	Nickname string    `json:"nickname"`
	Avatar   string    `json:"avatar"`
	Campus   string    `json:"campus"`
	Note     string    `json:"note"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamDTO представляет команду с участниками и данными объявления
type TeamDTO struct {
	ID             int64           `json:"id"`
	PropertyID     int64           `json:"property_id"`
	PropertyTitle  string          `json:"property_title"`
	PropertyImage  string          `json:"property_image"`
	LandlordQRCode string          `json:"landlord_qr_code"`
	Creator        TeamMemberDTO   `json:"creator"`
	Members        []TeamMemberDTO `json:"members"`
	MaxMembers     int             `json:"max_members"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateTeamRequest запрос на создание команды
type CreateTeamRequest struct {
	PropertyID  int64  `json:"property_id"`
	Description string `json:"description"`
}

// TeamListResponse страница списка команд
type TeamListResponse struct {
	List  []TeamDTO `json:"list"`
	Total int       `json:"total"`
}

// UpdateNoteRequest запрос на обновление заметки участника
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// MessageDTO представляет сообщение чата команды
type MessageDTO struct {
	ID        int64         `json:"id"`
	TeamID    int64         `json:"team_id"`
	Sender    TeamSenderDTO `json:"sender"`
	Content   string        `json:"content"`
	Type      string        `json:"type"`
	CreatedAt time.Time     `json:"created_at"`
}

// TeamSenderDTO представляет отправителя сообщения
type TeamSenderDTO struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// MessageListResponse страница сообщений
type MessageListResponse struct {
	List  []MessageDTO `json:"list"`
	Total int          `json:"total"`
}

// ListingDTO представляет объявление
type ListingDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Price         float64   `json:"price"`
	Deposit       float64   `json:"deposit"`
	Location      string    `json:"location"`
	Address       string    `json:"address"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Area          float64   `json:"area"`
	Floor         int       `json:"floor"`
	TotalFloors   int       `json:"total_floors"`
	Images        []string  `json:"images"`
	Tags          string    `json:"tags"`
	Facilities    string    `json:"facilities"`
	ContactName   string    `json:"contact_name"`
	ContactPhone  string    `json:"contact_phone"`
	ContactQRCode string    `json:"contact_qr_code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListingListResponse страница объявлений
type ListingListResponse struct {
	List  []ListingDTO `json:"list"`
	Total int          `json:"total"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Code     string         `json:"code"`
	UserInfo *LoginUserInfo `json:"user_info"`
}

// LoginUserInfo данные профиля, присланные клиентом при входе
type LoginUserInfo struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// LoginResponse ответ на вход
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// RefreshResponse ответ на обновление токена
type RefreshResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest запрос на обновление профиля; nil-поля не трогаются
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname"`
	Avatar   *string `json:"avatar"`
	Campus   *string `json:"campus"`
	Motto    *string `json:"motto"`
}

// AddFavoriteRequest запрос на добавление в избранное
type AddFavoriteRequest struct {
	PropertyID int64 `json:"property_id"`
}

// ToUserDTO преобразует пользователя в DTO
func ToUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		OpenID:   u.OpenID,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Campus:   u.Campus,
		Motto:    u.Motto,
	}
}

// ToMemberDTO преобразует представление участника в DTO
func ToMemberDTO(m entity.TeamMemberView) TeamMemberDTO {
	return TeamMemberDTO{
		ID:       m.ID,
		Nickname: m.Nickname,
		Avatar:   m.Avatar,
		Campus:   m.Campus,
		Note:     m.Note,
		JoinedAt: m.JoinedAt,
	}
}

// ToTeamDTO преобразует представление команды в DTO
func ToTeamDTO(view *entity.TeamView) TeamDTO {
	members := make([]TeamMemberDTO, 0, len(view.Members))
	for _, m := range view.Members {
		members = append(members, ToMemberDTO(m))
	}

	return TeamDTO{
		ID:             view.ID,
		PropertyID:     view.PropertyID,
		PropertyTitle:  view.PropertyTitle,
		PropertyImage:  view.PropertyImage,
		LandlordQRCode: view.LandlordQRCode,
		Creator:        ToMemberDTO(view.Creator),
		Members:        members,
		MaxMembers:     view.MaxMembers,
		Description:    view.Description,
		Status:         view.Status,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

// ToMessageDTO преобразует сообщение в DTO
func ToMessageDTO(view *entity.TeamMessageView) MessageDTO {
	return MessageDTO{
		ID:     view.ID,
		TeamID: view.TeamID,
		Sender: TeamSenderDTO{
			ID:       view.Sender.ID,
			Nickname: view.Sender.Nickname,
			Avatar:   view.Sender.Avatar,
		},
		Content:   view.Content,
		Type:      view.Type,
		CreatedAt: view.CreatedAt,
	}
}

// ToListingDTO преобразует объявление в DTO
func ToListingDTO(l *entity.Listing) ListingDTO {
	images := l.ImageList()
	if images == nil {
		images = []string{}
	}

	return ListingDTO{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Type:          l.Type,
		Price:         l.Price,
		Deposit:       l.Deposit,
		Location:      l.Location,
		Address:       l.Address,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		Area:          l.Area,
		Floor:         l.Floor,
		TotalFloors:   l.TotalFloors,
		Images:        images,
		Tags:          l.Tags,
		Facilities:    l.Facilities,
		ContactName:   l.ContactName,
		ContactPhone:  l.ContactPhone,
		ContactQRCode: l.ContactQRCode,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
