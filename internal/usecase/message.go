package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// MessageUseCase реализует чат команды: добавление и чтение сообщений.
// Любая операция доступна только текущим участникам команды; сообщения
// после создания не изменяются и не удаляются.
type MessageUseCase struct {
	messageRepo    repository.MessageRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
}

// NewMessageUseCase создает новый usecase для сообщений
func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo:    messageRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// MessageListResult страница сообщений команды
type MessageListResult struct {
	List  []*entity.TeamMessageView
	Total int
}

// SendMessage добавляет сообщение в чат команды
func (uc *MessageUseCase) SendMessage(ctx context.Context, userID, teamID int64, content, msgType string) (*entity.TeamMessageView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domainErrors.NewDomainError(
			"EMPTY_CONTENT",
			"message content must not be empty",
			domainErrors.ErrEmptyContent,
		)
	}

	if msgType == "" {
		msgType = entity.MessageTypeText
	}
	if !entity.ValidMessageType(msgType) {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"unknown message type",
			domainErrors.ErrInvalidInput,
		)
	}

	if err := uc.ensureMember(ctx, teamID, userID); err != nil {
		return nil, err
	}

	msg := &entity.TeamMessage{
		TeamID:    teamID,
		SenderID:  userID,
		Content:   content,
		Type:      msgType,
		CreatedAt: time.Now(),
	}

	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	views, err := uc.attachSenders(ctx, []*entity.TeamMessage{msg})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// ListMessages возвращает страницу сообщений команды (старые первыми).
// sinceID — исключающая нижняя граница: клиент передает id последнего
// увиденного сообщения и дозабирает только новые.
func (uc *MessageUseCase) ListMessages(ctx context.Context, userID, teamID, sinceID int64, page, limit int) (*MessageListResult, error) {
	if err := uc.ensureMember(ctx, teamID, userID); err != nil {
		return nil, err
	}

	offset, limit := normalizePage(page, limit, 50)

	messages, total, err := uc.messageRepo.GetByTeam(ctx, teamID, repository.MessageFilter{
		SinceID: sinceID,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	views, err := uc.attachSenders(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &MessageListResult{List: views, Total: total}, nil
}

// ensureMember проверяет текущее членство пользователя в команде
func (uc *MessageUseCase) ensureMember(ctx context.Context, teamID, userID int64) error {
	if _, err := uc.membershipRepo.Get(ctx, teamID, userID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NewDomainError(
				"FORBIDDEN",
				"you are not a member of this team",
				domainErrors.ErrForbidden,
			)
		}
		return fmt.Errorf("failed to get membership: %w", err)
	}
	return nil
}

func (uc *MessageUseCase) attachSenders(ctx context.Context, messages []*entity.TeamMessage) ([]*entity.TeamMessageView, error) {
	senderIDs := make([]int64, 0, len(messages))
	seen := make(map[int64]bool, len(messages))
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	profiles, err := uc.userRepo.GetProfiles(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender profiles: %w", err)
	}

	views := make([]*entity.TeamMessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, &entity.TeamMessageView{
			TeamMessage: *m,
			Sender:      profiles[m.SenderID],
		})
	}

	return views, nil
}
