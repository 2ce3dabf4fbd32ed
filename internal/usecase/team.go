package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// MaxNoteLength максимальная длина личной заметки участника в символах
const MaxNoteLength = 500

// TeamUseCase реализует жизненный цикл команд: создание, вступление, выход.
// Каждая операция выполняется в одной транзакции; внутри неё берется
// advisory-блокировка пользователя (инвариант "одна активная команда на
// пользователя") и строчная блокировка команды (проверка вместимости).
type TeamUseCase struct {
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	listingRepo    repository.ListingRepository
	txManager      repository.TransactionManager
	query          *TeamQueryUseCase
}

// NewTeamUseCase создает новый usecase для команд
func NewTeamUseCase(
	teamRepo repository.TeamRepository,
	membershipRepo repository.MembershipRepository,
	listingRepo repository.ListingRepository,
	txManager repository.TransactionManager,
	query *TeamQueryUseCase,
) *TeamUseCase {
	return &TeamUseCase{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		listingRepo:    listingRepo,
		txManager:      txManager,
		query:          query,
	}
}

// CreateTeam создает команду вокруг объявления; создатель вступает сразу.
// Вместимость фиксируется по числу спален на момент создания и дальше
// не пересчитывается, команда на одну спальню рождается уже полной.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, userID, listingID int64, description string) (*entity.TeamView, error) {
	var teamID int64

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureNoActiveTeam(ctx, userID); err != nil {
			return err
		}

		listing, err := uc.listingRepo.GetByID(ctx, listingID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.NewDomainError(
					"LISTING_NOT_FOUND",
					"listing not found",
					domainErrors.ErrNotFound,
				)
			}
			return fmt.Errorf("failed to get listing: %w", err)
		}

		if listing.Bedrooms < 1 {
			return domainErrors.NewDomainError(
				"INVALID_INPUT",
				"listing has no bedroom count",
				domainErrors.ErrInvalidInput,
			)
		}

		now := time.Now()
		team := &entity.Team{
			PropertyID:    listing.ID,
			PropertyTitle: listing.Title,
			CreatorID:     userID,
			MaxMembers:    listing.Bedrooms,
			Description:   description,
			Status:        entity.DeriveStatus(1, listing.Bedrooms),
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := uc.teamRepo.Create(ctx, team); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		membership := &entity.TeamMembership{
			TeamID:   team.ID,
			UserID:   userID,
			JoinedAt: now,
		}
		if err := uc.membershipRepo.Create(ctx, membership); err != nil {
			return fmt.Errorf("failed to add creator membership: %w", err)
		}

		teamID = team.ID
		return nil
	})

	if err != nil {
		return nil, err
	}

	return uc.query.TeamView(ctx, teamID)
}

// JoinTeam добавляет пользователя в команду.
// Команда читается с блокировкой FOR UPDATE, а число участников
// перечитывается внутри транзакции: из двух одновременных вступлений
// на последнее место выигрывает ровно одно, второе получает TEAM_FULL.
func (uc *TeamUseCase) JoinTeam(ctx context.Context, userID, teamID int64) (*entity.TeamView, error) {
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureNoActiveTeam(ctx, userID); err != nil {
			return err
		}

		team, err := uc.getTeamForUpdate(ctx, teamID)
		if err != nil {
			return err
		}

		switch team.Status {
		case entity.TeamStatusClosed:
			return domainErrors.NewDomainError(
				"TEAM_CLOSED",
				"team is closed",
				domainErrors.ErrTeamClosed,
			)
		case entity.TeamStatusFull:
			return domainErrors.NewDomainError(
				"TEAM_FULL",
				"team is full",
				domainErrors.ErrTeamFull,
			)
		}

		count, err := uc.membershipRepo.CountByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("failed to count team members: %w", err)
		}

		if count >= team.MaxMembers {
			return domainErrors.NewDomainError(
				"TEAM_FULL",
				"team is full",
				domainErrors.ErrTeamFull,
			)
		}

		membership := &entity.TeamMembership{
			TeamID:   teamID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		if err := uc.membershipRepo.Create(ctx, membership); err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}

		// Статус выводится заново из фактического числа участников
		newStatus := entity.DeriveStatus(count+1, team.MaxMembers)
		if newStatus != team.Status {
			if err := uc.teamRepo.UpdateStatus(ctx, teamID, newStatus); err != nil {
				return fmt.Errorf("failed to update team status: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return uc.query.TeamView(ctx, teamID)
}

// LeaveTeam выводит пользователя из команды.
// Уход создателя закрывает команду и удаляет все членства (история
// сообщений остается); уход обычного участника освобождает место.
func (uc *TeamUseCase) LeaveTeam(ctx context.Context, userID, teamID int64) error {
	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		team, err := uc.getTeamForUpdate(ctx, teamID)
		if err != nil {
			return err
		}

		if _, err := uc.membershipRepo.Get(ctx, teamID, userID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.NewDomainError(
					"NOT_A_MEMBER",
					"user is not a member of this team",
					domainErrors.ErrNotAMember,
				)
			}
			return fmt.Errorf("failed to get membership: %w", err)
		}

		outcome := entity.LeaveTransition(team, userID)

		if outcome.RemoveAllMembers {
			if err := uc.teamRepo.UpdateStatus(ctx, teamID, outcome.NewStatus); err != nil {
				return fmt.Errorf("failed to close team: %w", err)
			}
			if err := uc.membershipRepo.DeleteByTeam(ctx, teamID); err != nil {
				return fmt.Errorf("failed to remove team members: %w", err)
			}
			return nil
		}

		if err := uc.membershipRepo.Delete(ctx, teamID, userID); err != nil {
			return fmt.Errorf("failed to delete membership: %w", err)
		}

		if outcome.NewStatus != team.Status {
			if err := uc.teamRepo.UpdateStatus(ctx, teamID, outcome.NewStatus); err != nil {
				return fmt.Errorf("failed to update team status: %w", err)
			}
		}

		return nil
	})
}

// UpdateMemberNote обновляет личную заметку участника (только свою)
func (uc *TeamUseCase) UpdateMemberNote(ctx context.Context, actingUserID, teamID, targetUserID int64, note string) (*entity.TeamMemberView, error) {
	if actingUserID != targetUserID {
		return nil, domainErrors.NewDomainError(
			"FORBIDDEN",
			"you can only edit your own note",
			domainErrors.ErrForbidden,
		)
	}

	if utf8.RuneCountInString(note) > MaxNoteLength {
		return nil, domainErrors.NewDomainError(
			"NOTE_TOO_LONG",
			fmt.Sprintf("note must be at most %d characters", MaxNoteLength),
			domainErrors.ErrNoteTooLong,
		)
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.membershipRepo.Get(ctx, teamID, targetUserID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.NewDomainError(
					"NOT_A_MEMBER",
					"user is not a member of this team",
					domainErrors.ErrNotAMember,
				)
			}
			return fmt.Errorf("failed to get membership: %w", err)
		}

		if err := uc.membershipRepo.UpdateNote(ctx, teamID, targetUserID, note); err != nil {
			return fmt.Errorf("failed to update member note: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return uc.query.MemberView(ctx, teamID, targetUserID)
}

// ensureNoActiveTeam берет блокировку пользователя и проверяет, что он
// не состоит ни в одной незакрытой команде
func (uc *TeamUseCase) ensureNoActiveTeam(ctx context.Context, userID int64) error {
	if err := uc.membershipRepo.LockUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	teamID, err := uc.membershipRepo.ActiveTeamID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check active membership: %w", err)
	}

	if teamID != 0 {
		return domainErrors.NewDomainError(
			"ALREADY_IN_TEAM",
			"user already belongs to an active team",
			domainErrors.ErrAlreadyInTeam,
		)
	}

	return nil
}

func (uc *TeamUseCase) getTeamForUpdate(ctx context.Context, teamID int64) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByIDForUpdate(ctx, teamID)
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
	return team, nil
}
