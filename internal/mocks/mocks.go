package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unimate/internal/models"
	"unimate/internal/repositories"
	"unimate/internal/session"
)

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	args := m.Called(ctx, id)
	var profile models.Profile
	if val := args.Get(0); val != nil {
		profile = val.(models.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileRepositoryMock) CompleteProfile(ctx context.Context, id string, update models.ProfileUpdate) (models.Profile, error) {
	args := m.Called(ctx, id, update)
	var profile models.Profile
	if val := args.Get(0); val != nil {
		profile = val.(models.Profile)
	}
	return profile, args.Error(1)
}

type ContractRepositoryMock struct {
	mock.Mock
}

func (m *ContractRepositoryMock) CreateContract(ctx context.Context, contract models.NewContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *ContractRepositoryMock) GetContract(ctx context.Context, id string) (models.ContractDetails, error) {
	args := m.Called(ctx, id)
	var details models.ContractDetails
	if val := args.Get(0); val != nil {
		details = val.(models.ContractDetails)
	}
	return details, args.Error(1)
}

func (m *ContractRepositoryMock) SignContract(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) ListConversationRows(ctx context.Context, profileID string) ([]models.ConversationRow, error) {
	args := m.Called(ctx, profileID)
	var rows []models.ConversationRow
	if val := args.Get(0); val != nil {
		rows = val.([]models.ConversationRow)
	}
	return rows, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, senderID, receiverID, content string) (models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	args := m.Called(ctx, receiverID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

type LocationSearcherMock struct {
	mock.Mock
}

func (m *LocationSearcherMock) Search(ctx context.Context, query, countryCode string) []models.Location {
	args := m.Called(ctx, query, countryCode)
	if val := args.Get(0); val != nil {
		return val.([]models.Location)
	}
	return nil
}

type UniversitySearcherMock struct {
	mock.Mock
}

func (m *UniversitySearcherMock) Search(ctx context.Context, name, country string) []models.University {
	args := m.Called(ctx, name, country)
	if val := args.Get(0); val != nil {
		return val.([]models.University)
	}
	return nil
}

var (
	_ repositories.ProfileRepository      = (*ProfileRepositoryMock)(nil)
	_ repositories.ContractRepository     = (*ContractRepositoryMock)(nil)
	_ repositories.ConversationRepository = (*ConversationRepositoryMock)(nil)
	_ repositories.MessageRepository      = (*MessageRepositoryMock)(nil)
	_ session.Authenticator               = (*AuthenticatorMock)(nil)
)
