// internal/handlers/tenant_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wortschatz_keep/internal/handlers"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/service/mocks"
)

func TestTenantHandler_CreateTenant(t *testing.T) {
	// --- セットアップ ---
	mockTenantService := mocks.NewMockTenantService(t)
	tenantHandler := handlers.NewTenantHandler(mockTenantService, testLogger())
	router := chi.NewRouter()
	router.Post("/api/v1/tenants", tenantHandler.CreateTenant) // 認証不要の公開ルート
	// ------------------

	validReqBody := model.RegisterTenantRequest{
		Name:  "Anna",
		Email: "anna@example.com",
	}
	expectedTenant := &model.Tenant{
		TenantID:  uuid.New(),
		Name:      validReqBody.Name,
		Email:     validReqBody.Email,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectError    bool
	}{
		{
			name: "Success - Valid request",
			body: validReqBody,
			setupMock: func() {
				mockTenantService.On("CreateTenant", mock.AnythingOfType("*context.valueCtx"), &validReqBody).
					Return(expectedTenant, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectError:    false,
		},
		{
			name:           "Fail - Invalid email",
			body:           model.RegisterTenantRequest{Name: "Anna", Email: "not-an-email"},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "Fail - Duplicate email",
			body: validReqBody,
			setupMock: func() {
				mockTenantService.On("CreateTenant", mock.AnythingOfType("*context.valueCtx"), &validReqBody).
					Return(nil, model.ErrConflict).Once()
			},
			expectedStatus: http.StatusConflict,
			expectError:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/tenants", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if !tc.expectError {
				var resp model.TenantResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, expectedTenant.Name, resp.Name)
				assert.Equal(t, expectedTenant.Email, resp.Email)
				assert.NotEqual(t, uuid.Nil, resp.TenantID)
			} else {
				var errResp model.APIErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error.Message)
			}

			mockTenantService.AssertExpectations(t)
		})
	}
}
