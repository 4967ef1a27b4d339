package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kimuray/pcs-gen/internal/models"
	"github.com/kimuray/pcs-gen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTownService is a mock implementation of the TownService interface
type MockTownService struct {
	mock.Mock
}

func (m *MockTownService) FindByZipCode(ctx context.Context, zipCode string) ([]models.Town, error) {
	args := m.Called(ctx, zipCode)
	return args.Get(0).([]models.Town), args.Error(1)
}

func TestTownHandler_FindByZipCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		zip            string
		mockTowns      []models.Town
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name: "successful lookup",
			zip:  "1000005",
			mockTowns: []models.Town{
				{ID: 2, ZipCode: "1000005", AreaName: "丸の内", CityCode: "13101"},
			},
			expectedStatus: http.StatusOK,
			expectedBody: []interface{}{
				map[string]interface{}{
					"id":          float64(2),
					"zip_code":    "1000005",
					"area_name":   "丸の内",
					"street_name": "",
					"city_code":   "13101",
				},
			},
		},
		{
			name:           "no results",
			zip:            "9999999",
			mockTowns:      []models.Town{},
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"error": "no towns found for the zip code"},
		},
		{
			name:           "invalid zip code",
			zip:            "abc",
			mockTowns:      []models.Town(nil),
			mockError:      fmt.Errorf("service: %w: %q", service.ErrInvalidZipCode, "abc"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "zip code must be 7 digits"},
		},
		{
			name:           "service error",
			zip:            "1000005",
			mockTowns:      []models.Town(nil),
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockTownService)
			handler := NewTownHandler(mockSvc)
			mockSvc.On("FindByZipCode", mock.Anything, tt.zip).Return(tt.mockTowns, tt.mockError)

			// Route through the engine so the :zip parameter is bound
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.GET("/towns/:zip", handler.FindByZipCode)
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/towns/"+tt.zip, nil))

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}
