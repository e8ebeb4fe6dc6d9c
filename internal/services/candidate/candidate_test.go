package candidate_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aditya-1123/Voting-App/internal/models"
	candidateservice "github.com/aditya-1123/Voting-App/internal/services/candidate"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) CreateCandidate(ctx context.Context, candidate models.Candidate) (int, error) {
	args := m.Called(ctx, candidate)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetCandidate(ctx context.Context, id int) (*models.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *RepoMock) UpdateCandidate(ctx context.Context, id int, candidate models.Candidate) (*models.Candidate, error) {
	args := m.Called(ctx, id, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *RepoMock) RemoveCandidate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RepoMock) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Candidate), args.Error(1)
}

func (m *RepoMock) Tally(ctx context.Context) ([]models.TallyEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TallyEntry), args.Error(1)
}

func (m *RepoMock) CastVote(ctx context.Context, candidateID int, voterUID string) error {
	args := m.Called(ctx, candidateID, voterUID)
	return args.Error(0)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

var (
	adminUser = &models.User{UUID: "admin-uid", Username: "admin", Role: models.RoleAdmin}
	voterUser = &models.User{UUID: "voter-uid", Username: "voter", Role: models.RoleVoter}
)

func TestService_Create_AdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		actingUID  string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:      "admin creates candidate",
			actingUID: "admin-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "admin-uid").Return(adminUser, nil).Once()
				r.On("CreateCandidate", mock.Anything, models.Candidate{
					Name:  "Alice",
					Party: "Party X",
				}).Return(7, nil).Once()
			},
		},
		{
			name:      "voter is rejected",
			actingUID: "voter-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "voter-uid").Return(voterUser, nil).Once()
			},
			wantErr: candidateservice.ErrNotAdmin,
		},
		{
			name:      "lookup failure resolves to not admin",
			actingUID: "broken-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "broken-uid").
					Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: candidateservice.ErrNotAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := candidateservice.New(repo, makeLogger())

			created, err := svc.Create(context.Background(), tt.actingUID, models.DummyCandidate{
				Name:  "Alice",
				Party: "Party X",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, created.ID)
				assert.Equal(t, 0, created.VoteCount)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, "admin-uid").Return(adminUser, nil).Once()
	repo.On("UpdateCandidate", mock.Anything, 99, mock.Anything).
		Return(nil, repository.ErrNotFound).Once()
	svc := candidateservice.New(repo, makeLogger())

	updated, err := svc.Update(context.Background(), "admin-uid", 99, models.DummyCandidate{
		Name:  "Bob",
		Party: "Party Y",
	})
	assert.ErrorIs(t, err, candidateservice.ErrCandidateNotFound)
	assert.Nil(t, updated)
	repo.AssertExpectations(t)
}

func TestService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "admin removes candidate",
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "admin-uid").Return(adminUser, nil).Once()
				r.On("RemoveCandidate", mock.Anything, 7).Return(nil).Once()
			},
		},
		{
			name: "missing candidate",
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, "admin-uid").Return(adminUser, nil).Once()
				r.On("RemoveCandidate", mock.Anything, 7).
					Return(repository.ErrNotFound).Once()
			},
			wantErr: candidateservice.ErrCandidateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := candidateservice.New(repo, makeLogger())

			err := svc.Remove(context.Background(), "admin-uid", 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_CastVote(t *testing.T) {
	someCandidate := &models.Candidate{ID: 7, Name: "Alice", Party: "Party X"}
	votedUser := &models.User{UUID: "voted-uid", Role: models.RoleVoter, HasVoted: true}

	tests := []struct {
		name       string
		voterUID   string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "successful vote",
			voterUID: "voter-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "voter-uid").Return(voterUser, nil).Once()
				r.On("CastVote", mock.Anything, 7, "voter-uid").Return(nil).Once()
			},
		},
		{
			name:     "candidate not found checked first",
			voterUID: "voter-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: candidateservice.ErrCandidateNotFound,
		},
		{
			name:     "voter not found",
			voterUID: "ghost-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "ghost-uid").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: candidateservice.ErrVoterNotFound,
		},
		{
			name:     "admin cannot vote",
			voterUID: "admin-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "admin-uid").Return(adminUser, nil).Once()
			},
			wantErr: candidateservice.ErrAdminCannotVote,
		},
		{
			name:     "admin cannot vote even after voting flag set",
			voterUID: "odd-admin-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "odd-admin-uid").
					Return(&models.User{UUID: "odd-admin-uid", Role: models.RoleAdmin, HasVoted: true}, nil).Once()
			},
			wantErr: candidateservice.ErrAdminCannotVote,
		},
		{
			name:     "already voted",
			voterUID: "voted-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "voted-uid").Return(votedUser, nil).Once()
			},
			wantErr: candidateservice.ErrAlreadyVoted,
		},
		{
			name:     "race loser maps to already voted",
			voterUID: "voter-uid",
			setupMocks: func(r *RepoMock) {
				r.On("GetCandidate", mock.Anything, 7).Return(someCandidate, nil).Once()
				r.On("GetUser", mock.Anything, "voter-uid").Return(voterUser, nil).Once()
				r.On("CastVote", mock.Anything, 7, "voter-uid").
					Return(repository.ErrAlreadyVoted).Once()
			},
			wantErr: candidateservice.ErrAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := candidateservice.New(repo, makeLogger())

			err := svc.CastVote(context.Background(), 7, tt.voterUID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_List_Projection(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListCandidates", mock.Anything).Return([]*models.Candidate{
		{ID: 1, Name: "Alice", Party: "Party X", VoteCount: 5},
		{ID: 2, Name: "Bob", Party: "Party Y", VoteCount: 3},
	}, nil).Once()
	svc := candidateservice.New(repo, makeLogger())

	items, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []models.CandidateListItem{
		{Name: "Alice", Party: "Party X"},
		{Name: "Bob", Party: "Party Y"},
	}, items)
}

func TestService_Tally(t *testing.T) {
	repo := new(RepoMock)
	repo.On("Tally", mock.Anything).Return([]models.TallyEntry{
		{Party: "Party X", Count: 5},
		{Party: "Party Y", Count: 3},
	}, nil).Once()
	svc := candidateservice.New(repo, makeLogger())

	entries, err := svc.Tally(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Party X", entries[0].Party)
}
