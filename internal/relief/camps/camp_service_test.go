package camps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
)

type MockCampRepository struct {
	mock.Mock
}

func (m *MockCampRepository) GetCamp(ctx context.Context, id int) (*models.Camp, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Camp), args.Error(1)
}

func (m *MockCampRepository) GetCampsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Camp, error) {
	args := m.Called(conditions.BuildConditions(nil))
	return args.Get(0).([]models.Camp), args.Error(1)
}

func (m *MockCampRepository) PersistCamp(ctx context.Context, camp models.Camp) (*models.Camp, error) {
	args := m.Called(camp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Camp), args.Error(1)
}

func (m *MockCampRepository) UpdateCamp(ctx context.Context, id int, camp models.Camp) (bool, error) {
	args := m.Called(id, camp)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampRepository) DeleteCamp(ctx context.Context, id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

type MockManagerPolicy struct {
	mock.Mock
}

func (m *MockManagerPolicy) OnCampCreated(ctx context.Context, managerID *int, actorID *int) {
	m.Called(managerID, actorID)
}

func (m *MockManagerPolicy) OnCampUpdated(ctx context.Context, oldManagerID, newManagerID *int, actorID *int) {
	m.Called(oldManagerID, newManagerID, actorID)
}

func (m *MockManagerPolicy) OnCampDeleted(ctx context.Context, oldManagerID *int, actorID *int) {
	m.Called(oldManagerID, actorID)
}

func intPtr(v int) *int {
	return &v
}

func validCampInput() CampInput {
	return CampInput{
		AreaID:    2,
		ManagerID: intPtr(4),
		Name:      "North Shelter",
		Capacity:  intPtr(300),
		Location:  "School gym",
	}
}

func TestCreateCampNotifiesPolicy(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	expected := models.Camp{
		AreaID:    2,
		ManagerID: intPtr(4),
		Name:      "North Shelter",
		Capacity:  300,
		Location:  "School gym",
		Status:    "Active",
	}
	created := expected
	created.ID = 3

	repo.On("PersistCamp", expected).Return(&created, nil).Once()
	policy.On("OnCampCreated", intPtr(4), intPtr(1)).Once()

	camp, err := service.CreateCamp(context.Background(), validCampInput(), intPtr(1))

	require.NoError(t, err)
	assert.Equal(t, 3, camp.ID)
	repo.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestCreateCampValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(in *CampInput)
		property string
	}{
		{"missing area", func(in *CampInput) { in.AreaID = 0 }, "area_id"},
		{"missing name", func(in *CampInput) { in.Name = "  " }, "name"},
		{"missing capacity", func(in *CampInput) { in.Capacity = nil }, "capacity"},
		{"negative capacity", func(in *CampInput) { in.Capacity = intPtr(-1) }, "capacity"},
		{"missing location", func(in *CampInput) { in.Location = "" }, "location"},
		{"bad manager", func(in *CampInput) { in.ManagerID = intPtr(0) }, "manager_id"},
		{"bad date", func(in *CampInput) { in.DateEstablished = "12/03/2024" }, "date_established"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCampRepository)
			policy := new(MockManagerPolicy)
			service := NewCampService(repo, policy, zap.NewNop())

			input := validCampInput()
			tt.mutate(&input)

			_, err := service.CreateCamp(context.Background(), input, nil)

			var validationErr *custom_error.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.property, validationErr.Property)
			repo.AssertNotCalled(t, "PersistCamp", mock.Anything)
			policy.AssertNotCalled(t, "OnCampCreated", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCampParsesEstablishedDate(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	input := validCampInput()
	input.ManagerID = nil
	input.DateEstablished = "2024-03-12"
	established := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	repo.On("PersistCamp", mock.MatchedBy(func(c models.Camp) bool {
		return c.DateEstablished != nil && c.DateEstablished.Equal(established) && c.ManagerID == nil
	})).Return(&models.Camp{ID: 5}, nil).Once()
	policy.On("OnCampCreated", (*int)(nil), (*int)(nil)).Once()

	_, err := service.CreateCamp(context.Background(), input, nil)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestUpdateCampPassesOldAndNewManager(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	input := validCampInput()
	input.ManagerID = intPtr(5)

	repo.On("GetCamp", 3).Return(&models.Camp{ID: 3, ManagerID: intPtr(4)}, nil).Once()
	repo.On("UpdateCamp", 3, mock.AnythingOfType("models.Camp")).Return(true, nil).Once()
	policy.On("OnCampUpdated", intPtr(4), intPtr(5), intPtr(1)).Once()

	camp, err := service.UpdateCamp(context.Background(), 3, input, intPtr(1))

	require.NoError(t, err)
	assert.Equal(t, 3, camp.ID)
	assert.Equal(t, 5, *camp.ManagerID)
	repo.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestUpdateMissingCamp(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	repo.On("GetCamp", 9).Return(nil, nil).Once()

	_, err := service.UpdateCamp(context.Background(), 9, validCampInput(), nil)

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	repo.AssertNotCalled(t, "UpdateCamp", mock.Anything, mock.Anything)
	policy.AssertNotCalled(t, "OnCampUpdated", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCampCapturesManagerBeforeDelete(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	repo.On("GetCamp", 3).Return(&models.Camp{ID: 3, ManagerID: intPtr(4)}, nil).Once()
	repo.On("DeleteCamp", 3).Return(true, nil).Once()
	policy.On("OnCampDeleted", intPtr(4), intPtr(1)).Once()

	require.NoError(t, service.DeleteCamp(context.Background(), 3, intPtr(1)))

	repo.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestDeleteCampFailureSkipsPolicy(t *testing.T) {
	repo := new(MockCampRepository)
	policy := new(MockManagerPolicy)
	service := NewCampService(repo, policy, zap.NewNop())

	repo.On("GetCamp", 3).Return(&models.Camp{ID: 3, ManagerID: intPtr(4)}, nil).Once()
	repo.On("DeleteCamp", 3).Return(false, errors.New("connection refused")).Once()

	err := service.DeleteCamp(context.Background(), 3, nil)

	assert.Error(t, err)
	policy.AssertNotCalled(t, "OnCampDeleted", mock.Anything, mock.Anything)
}

func TestListCampsBuildsConditions(t *testing.T) {
	repo := new(MockCampRepository)
	service := NewCampService(repo, new(MockManagerPolicy), zap.NewNop())

	repo.On("GetCampsBy", goqu.Ex{"manager_id": 4, "status": "Active"}).
		Return([]models.Camp{{ID: 1}, {ID: 2}}, nil).Once()

	camps, err := service.ListCamps(context.Background(), CampFilter{ManagerID: 4, Status: " Active "})

	require.NoError(t, err)
	assert.Len(t, camps, 2)
	repo.AssertExpectations(t)
}
