package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aditya-1123/Voting-App/internal/models"
)

// CreateCandidate добавляет нового кандидата с нулевым счетчиком голосов
// и возвращает его ID.
func (s *Storage) CreateCandidate(ctx context.Context, candidate models.Candidate) (int, error) {
	const op = "storage.CreateCandidate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO candidates (name, party)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		candidate.Name, candidate.Party).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCandidate возвращает кандидата по его ID.
func (s *Storage) GetCandidate(ctx context.Context, id int) (*models.Candidate, error) {
	const op = "storage.GetCandidate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, party, vote_count
			  FROM candidates
			  WHERE id = $1`
	c := &models.Candidate{}
	row := s.DB.QueryRowContext(ctx, query, id)

	if err := row.Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCandidate обновляет имя и партию кандидата, возвращает обновленную запись.
func (s *Storage) UpdateCandidate(ctx context.Context, id int, candidate models.Candidate) (*models.Candidate, error) {
	const op = "storage.UpdateCandidate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE candidates
			  SET name = $1, party = $2
			  WHERE id = $3
			  RETURNING id, name, party, vote_count`
	c := &models.Candidate{}
	row := s.DB.QueryRowContext(ctx, query, candidate.Name, candidate.Party, id)

	if err := row.Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// RemoveCandidate удаляет кандидата по ID вместе с его записями о голосах.
// Флаг has_voted проголосовавших за него пользователей не сбрасывается:
// такой пользователь навсегда остается без права повторного голоса.
func (s *Storage) RemoveCandidate(ctx context.Context, id int) error {
	const op = "storage.RemoveCandidate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM candidates WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListCandidates возвращает всех кандидатов.
func (s *Storage) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	const op = "storage.ListCandidates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, party, vote_count
			  FROM candidates
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err = rows.Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Tally возвращает итоги голосования по убыванию числа голосов.
// Порядок партий с равным числом голосов не определен.
func (s *Storage) Tally(ctx context.Context) ([]models.TallyEntry, error) {
	const op = "storage.Tally"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT party, vote_count
			  FROM candidates
			  ORDER BY vote_count DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.TallyEntry
	for rows.Next() {
		var e models.TallyEntry
		if err = rows.Scan(&e.Party, &e.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountVotes возвращает фактическое число записей о голосах кандидата.
func (s *Storage) CountVotes(ctx context.Context, candidateID int) (int, error) {
	const op = "storage.CountVotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM candidate_votes WHERE candidate_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, candidateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CastVote записывает голос в одной транзакции.
//
// Сначала условным обновлением has_voted = TRUE ... AND has_voted = FALSE
// захватывается единственный голос пользователя: ноль затронутых строк
// означает повторную попытку или проигранную гонку и откатывает транзакцию
// с ErrAlreadyVoted. Затем добавляется запись о голосе и инкрементируется
// vote_count тем же запросом, что исключает потерю инкремента при
// параллельных голосах за одного кандидата.
func (s *Storage) CastVote(ctx context.Context, candidateID int, voterUID string) error {
	const op = "storage.CastVote"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET has_voted = TRUE WHERE uid = $1 AND has_voted = FALSE`,
		voterUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAlreadyVoted)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO candidate_votes (candidate_id, voter_uid) VALUES ($1, $2)`,
		candidateID, voterUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE candidates SET vote_count = vote_count + 1 WHERE id = $1`,
		candidateID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
