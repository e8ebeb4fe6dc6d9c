// Package candidate содержит бизнес-логику работы с кандидатами:
// операции администратора, голосование и подсчет итогов.
package candidate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aditya-1123/Voting-App/internal/lib/sl"
	"github.com/aditya-1123/Voting-App/internal/models"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// Ошибки бизнес-уровня. HTTP-слой сопоставляет их со статус-кодами.
var (
	// ErrNotAdmin — действие доступно только администратору.
	ErrNotAdmin = errors.New("user does not have admin role")
	// ErrCandidateNotFound — кандидат не найден.
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrVoterNotFound — голосующий пользователь не найден.
	ErrVoterNotFound = errors.New("voter not found")
	// ErrAdminCannotVote — администраторам голосовать запрещено.
	ErrAdminCannotVote = errors.New("admin is not allowed to vote")
	// ErrAlreadyVoted — пользователь уже голосовал.
	ErrAlreadyVoted = errors.New("user has already voted")
)

// Repository определяет методы хранилища, нужные сервису кандидатов.
type Repository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// CreateCandidate добавляет кандидата и возвращает его ID.
	CreateCandidate(ctx context.Context, candidate models.Candidate) (int, error)
	// GetCandidate возвращает кандидата по ID.
	GetCandidate(ctx context.Context, id int) (*models.Candidate, error)
	// UpdateCandidate обновляет кандидата и возвращает обновленную запись.
	UpdateCandidate(ctx context.Context, id int, candidate models.Candidate) (*models.Candidate, error)
	// RemoveCandidate удаляет кандидата по ID.
	RemoveCandidate(ctx context.Context, id int) error
	// ListCandidates возвращает всех кандидатов.
	ListCandidates(ctx context.Context) ([]*models.Candidate, error)
	// Tally возвращает итоги голосования по убыванию числа голосов.
	Tally(ctx context.Context) ([]models.TallyEntry, error)
	// CastVote атомарно записывает голос.
	CastVote(ctx context.Context, candidateID int, voterUID string) error
}

// adminCheck — трехзначный результат проверки роли администратора.
type adminCheck int

const (
	adminYes adminCheck = iota
	adminNo
	// adminLookupFailed: пользователя не удалось прочитать из хранилища.
	// Ошибка трактуется как отсутствие прав, а не как их наличие.
	adminLookupFailed
)

// Service реализует бизнес-логику работы с кандидатами и голосованием.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// checkAdminRole проверяет по хранилищу, является ли действующий пользователь
// администратором. Роль читается заново при каждом запросе, а не из токена:
// для операций администратора важен живой отзыв прав.
func (s *Service) checkAdminRole(ctx context.Context, userUID string) adminCheck {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("admin role lookup failed, treating as not admin",
			slog.String("uid", userUID), sl.Err(err))
		return adminLookupFailed
	}
	if user.Role == models.RoleAdmin {
		return adminYes
	}
	return adminNo
}

// Create добавляет нового кандидата. Доступно только администратору.
func (s *Service) Create(ctx context.Context, actingUserUID string, req models.DummyCandidate) (*models.Candidate, error) {
	if s.checkAdminRole(ctx, actingUserUID) != adminYes {
		return nil, ErrNotAdmin
	}
	candidate := models.Candidate{
		Name:  req.Name,
		Party: req.Party,
	}
	id, err := s.repo.CreateCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	candidate.ID = id
	s.log.Info("created new candidate", slog.Int("id", id))
	return &candidate, nil
}

// Update обновляет данные кандидата. Доступно только администратору.
func (s *Service) Update(ctx context.Context, actingUserUID string, candidateID int, req models.DummyCandidate) (*models.Candidate, error) {
	if s.checkAdminRole(ctx, actingUserUID) != adminYes {
		return nil, ErrNotAdmin
	}
	updated, err := s.repo.UpdateCandidate(ctx, candidateID, models.Candidate{
		Name:  req.Name,
		Party: req.Party,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	s.log.Info("updated candidate", slog.Int("id", candidateID))
	return updated, nil
}

// Remove удаляет кандидата. Доступно только администратору.
// Флаги has_voted проголосовавших за него не сбрасываются.
func (s *Service) Remove(ctx context.Context, actingUserUID string, candidateID int) error {
	if s.checkAdminRole(ctx, actingUserUID) != adminYes {
		return ErrNotAdmin
	}
	if err := s.repo.RemoveCandidate(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}
	s.log.Info("removed candidate", slog.Int("id", candidateID))
	return nil
}

// CastVote записывает голос пользователя за кандидата.
//
// Предусловия проверяются по порядку: кандидат существует, пользователь
// существует, пользователь не администратор, пользователь еще не голосовал.
// Сама запись голоса выполняется хранилищем в одной транзакции, поэтому
// повторная проверка has_voted там закрывает гонку двух параллельных голосов.
func (s *Service) CastVote(ctx context.Context, candidateID int, voterUID string) error {
	if _, err := s.repo.GetCandidate(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}

	voter, err := s.repo.GetUser(ctx, voterUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVoterNotFound
		}
		return err
	}
	if voter.Role == models.RoleAdmin {
		return ErrAdminCannotVote
	}
	if voter.HasVoted {
		return ErrAlreadyVoted
	}

	if err := s.repo.CastVote(ctx, candidateID, voterUID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyVoted):
			return ErrAlreadyVoted
		case errors.Is(err, repository.ErrNotFound):
			return ErrCandidateNotFound
		default:
			return err
		}
	}
	s.log.Info("vote recorded",
		slog.Int("candidate_id", candidateID), slog.String("voter_uid", voterUID))
	return nil
}

// Tally возвращает итоги голосования: пары {party, count} по убыванию голосов.
func (s *Service) Tally(ctx context.Context) ([]models.TallyEntry, error) {
	return s.repo.Tally(ctx)
}

// List возвращает всех кандидатов в публичной проекции {name, party}.
func (s *Service) List(ctx context.Context) ([]models.CandidateListItem, error) {
	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.CandidateListItem, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, models.CandidateListItem{
			Name:  c.Name,
			Party: c.Party,
		})
	}
	return result, nil
}
