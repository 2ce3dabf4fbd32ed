package entity

type Statistics struct {
	TotalUsers       int `json:"total_users"`
	TotalListings    int `json:"total_listings"`
	TotalTeams       int `json:"total_teams"`
	ActiveTeams      int `json:"active_teams"`
	FullTeams        int `json:"full_teams"`
	ClosedTeams      int `json:"closed_teams"`
	TotalMemberships int `json:"total_memberships"`
	TotalMessages    int `json:"total_messages"`
}
