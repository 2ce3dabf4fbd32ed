package entity

import "time"

const (
	TeamStatusActive = "active"
	TeamStatusFull   = "full"
	TeamStatusClosed = "closed"
)

type Team struct {
	ID            int64
	PropertyID    int64
	PropertyTitle string
	CreatorID     int64
	MaxMembers    int
	Description   string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TeamMembership строка членства пользователя в команде
type TeamMembership struct {
	ID       int64
	TeamID   int64
	UserID   int64
	Note     string
	JoinedAt time.Time
}

// TeamMemberView участник команды с публичным профилем
type TeamMemberView struct {
	UserProfile
	Note     string
	JoinedAt time.Time
}

// TeamView агрегированное представление команды для выдачи наружу
type TeamView struct {
	ID             int64
	PropertyID     int64
	PropertyTitle  string
	PropertyImage  string
	LandlordQRCode string
	Creator        TeamMemberView
	Members        []TeamMemberView
	MaxMembers     int
	Description    string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DeriveStatus вычисляет статус команды из числа участников и вместимости.
// Статус closed так не получить: он выставляется только при уходе создателя.
func DeriveStatus(memberCount, maxMembers int) string {
	if memberCount >= maxMembers {
		return TeamStatusFull
	}
	return TeamStatusActive
}

// LeaveOutcome результат выхода участника из команды
type LeaveOutcome struct {
	NewStatus        string
	RemoveAllMembers bool
}

// LeaveTransition вычисляет переход состояния при выходе пользователя.
// Выход создателя закрывает команду целиком и убирает всех участников;
// выход обычного участника освобождает место, и полная команда снова
// становится активной.
func LeaveTransition(team *Team, leavingUserID int64) LeaveOutcome {
	if leavingUserID == team.CreatorID {
		return LeaveOutcome{NewStatus: TeamStatusClosed, RemoveAllMembers: true}
	}
	if team.Status == TeamStatusFull {
		return LeaveOutcome{NewStatus: TeamStatusActive}
	}
	return LeaveOutcome{NewStatus: team.Status}
}
