package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// TeamQueryUseCase собирает агрегированные представления команд:
// команда + профиль создателя + участники + данные объявления
type TeamQueryUseCase struct {
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	listingRepo    repository.ListingRepository
	userRepo       repository.UserRepository
}

// NewTeamQueryUseCase создает новый usecase для чтения команд
func NewTeamQueryUseCase(
	teamRepo repository.TeamRepository,
	membershipRepo repository.MembershipRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *TeamQueryUseCase {
	return &TeamQueryUseCase{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		listingRepo:    listingRepo,
		userRepo:       userRepo,
	}
}

// TeamListResult страница списка команд
type TeamListResult struct {
	List  []*entity.TeamView
	Total int
}

// ListTeams возвращает страницу команд (новые первыми).
// status: active|full|closed|all; mine ограничивает команды участием userID.
func (uc *TeamQueryUseCase) ListTeams(ctx context.Context, userID int64, status string, mine bool, page, limit int) (*TeamListResult, error) {
	offset, limit := normalizePage(page, limit, 10)

	filter := repository.TeamFilter{
		Status: status,
		Offset: offset,
		Limit:  limit,
	}
	if mine {
		filter.MemberID = userID
	}

	teams, total, err := uc.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	views := make([]*entity.TeamView, 0, len(teams))
	for _, team := range teams {
		view, err := uc.assembleView(ctx, team)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return &TeamListResult{List: views, Total: total}, nil
}

// GetMyTeam возвращает незакрытую команду пользователя или nil
func (uc *TeamQueryUseCase) GetMyTeam(ctx context.Context, userID int64) (*entity.TeamView, error) {
	teamID, err := uc.membershipRepo.ActiveTeamID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active membership: %w", err)
	}

	if teamID == 0 {
		return nil, nil
	}

	return uc.TeamView(ctx, teamID)
}

// GetTeamDetail возвращает детали команды; смотреть могут только участники
func (uc *TeamQueryUseCase) GetTeamDetail(ctx context.Context, userID, teamID int64) (*entity.TeamView, error) {
	if _, err := uc.membershipRepo.Get(ctx, teamID, userID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewDomainError(
				"FORBIDDEN",
				"you are not a member of this team",
				domainErrors.ErrForbidden,
			)
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return uc.TeamView(ctx, teamID)
}

// TeamView строит агрегированное представление команды по её ID
func (uc *TeamQueryUseCase) TeamView(ctx context.Context, teamID int64) (*entity.TeamView, error) {
	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewDomainError(
				"TEAM_NOT_FOUND",
				"team not found",
				domainErrors.ErrNotFound,
			)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return uc.assembleView(ctx, team)
}

// MemberView возвращает представление одного участника команды
func (uc *TeamQueryUseCase) MemberView(ctx context.Context, teamID, userID int64) (*entity.TeamMemberView, error) {
	membership, err := uc.membershipRepo.Get(ctx, teamID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	profiles, err := uc.userRepo.GetProfiles(ctx, []int64{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get member profile: %w", err)
	}

	return &entity.TeamMemberView{
		UserProfile: profiles[userID],
		Note:        membership.Note,
		JoinedAt:    membership.JoinedAt,
	}, nil
}

func (uc *TeamQueryUseCase) assembleView(ctx context.Context, team *entity.Team) (*entity.TeamView, error) {
	memberships, err := uc.membershipRepo.GetByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	userIDs := make([]int64, 0, len(memberships)+1)
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	userIDs = append(userIDs, team.CreatorID)

	profiles, err := uc.userRepo.GetProfiles(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get member profiles: %w", err)
	}

	view := &entity.TeamView{
		ID:            team.ID,
		PropertyID:    team.PropertyID,
		PropertyTitle: team.PropertyTitle,
		MaxMembers:    team.MaxMembers,
		Description:   team.Description,
		Status:        team.Status,
		CreatedAt:     team.CreatedAt,
		UpdatedAt:     team.UpdatedAt,
	}

	view.Creator = entity.TeamMemberView{UserProfile: profiles[team.CreatorID]}

	view.Members = make([]entity.TeamMemberView, 0, len(memberships))
	for _, m := range memberships {
		member := entity.TeamMemberView{
			UserProfile: profiles[m.UserID],
			Note:        m.Note,
			JoinedAt:    m.JoinedAt,
		}
		view.Members = append(view.Members, member)

		// Заметка и время вступления создателя берутся из его членства
		if m.UserID == team.CreatorID {
			view.Creator.Note = m.Note
			view.Creator.JoinedAt = m.JoinedAt
		}
	}

	// Объявление могло быть удалено администратором: команда от этого
	// не ломается, просто остается без картинки и контакта
	listing, err := uc.listingRepo.GetByID(ctx, team.PropertyID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to get team listing: %w", err)
		}
	} else {
		view.PropertyImage = listing.PrimaryImage()
		view.LandlordQRCode = listing.ContactQRCode
	}

	return view, nil
}

// normalizePage приводит номер страницы и лимит к смещению и size по умолчанию
func normalizePage(page, limit, defaultLimit int) (offset, normalized int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}
