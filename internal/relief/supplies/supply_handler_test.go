package supplies

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"relief/pkg/auditlog"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
	"relief/pkg/roles"
)

type MockSupplyService struct {
	mock.Mock
}

func (m *MockSupplyService) GetSupply(ctx context.Context, id int) (*models.SupplyLot, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyLot), args.Error(1)
}

func (m *MockSupplyService) ListSupplies(ctx context.Context, filter SupplyFilter) ([]models.SupplyLot, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.SupplyLot), args.Error(1)
}

func (m *MockSupplyService) ListLowStock(ctx context.Context) ([]models.LowStockAlert, error) {
	args := m.Called()
	return args.Get(0).([]models.LowStockAlert), args.Error(1)
}

func (m *MockSupplyService) Stats(ctx context.Context) (*models.SupplyStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyStats), args.Error(1)
}

func (m *MockSupplyService) CreateSupply(ctx context.Context, input CreateSupplyInput) (*models.SupplyLot, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupplyLot), args.Error(1)
}

func (m *MockSupplyService) DeleteSupply(ctx context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type nopAuditor struct{}

func (nopAuditor) Log(string, interface{}, auditlog.Auditable, *int) {}

func setupRouter(service SupplyServiceInterface, role roles.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("")
	group.Use(func(c *gin.Context) {
		c.Set("userID", "1")
		c.Set("role", role.String())
		c.Next()
	})
	NewSupplyHandler(service, nopAuditor{}, zap.NewNop()).RegisterRoutes(group)
	return r
}

func perform(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetLowStockHandler(t *testing.T) {
	service := new(MockSupplyService)
	service.On("ListLowStock").Return([]models.LowStockAlert{
		{SupplyLot: models.SupplyLot{ID: 2, ItemName: "Insulin", Quantity: 30, CurrentQuantity: 1}, StockPercentage: decimal.RequireFromString("3.33")},
	}, nil).Once()

	w := perform(setupRouter(service, roles.Donor), http.MethodGet, "/supplies/alerts/low-stock", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock_percentage":"3.33"`)
	assert.Contains(t, w.Body.String(), `"supply_id":2`)
	service.AssertExpectations(t)
}

func TestDeleteSupplyHandler(t *testing.T) {
	tests := []struct {
		name           string
		role           roles.Role
		setupMock      func(m *MockSupplyService)
		expectedStatus int
	}{
		{
			name: "admin deletes",
			role: roles.Admin,
			setupMock: func(m *MockSupplyService) {
				m.On("DeleteSupply", 5).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "supply already distributed",
			role: roles.CampManager,
			setupMock: func(m *MockSupplyService) {
				m.On("DeleteSupply", 5).Return(custom_error.NewConflictError("supply 5 has distributions and cannot be deleted")).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "volunteer forbidden",
			role:           roles.Volunteer,
			setupMock:      func(m *MockSupplyService) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockSupplyService)
			tt.setupMock(service)

			w := perform(setupRouter(service, tt.role), http.MethodDelete, "/supplies/5", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestCreateSupplyHandler(t *testing.T) {
	input := CreateSupplyInput{CampID: 3, Category: "Medical", ItemName: "Insulin", Quantity: 20}

	service := new(MockSupplyService)
	service.On("CreateSupply", input).Return(&models.SupplyLot{ID: 12, CampID: 3, Quantity: 20, CurrentQuantity: 20}, nil).Once()

	w := perform(setupRouter(service, roles.Admin), http.MethodPost, "/supplies", input)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(setupRouter(service, roles.CampManager), http.MethodPost, "/supplies", input)
	assert.Equal(t, http.StatusForbidden, w.Code)

	service.AssertExpectations(t)
}
