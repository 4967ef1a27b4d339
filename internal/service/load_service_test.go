package service

import (
	"context"
	"testing"

	"github.com/kimuray/pcs-gen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTableRepository is a mock implementation of the TableRepository interface
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTableRepository) ReplaceAll(ctx context.Context, script string) error {
	args := m.Called(ctx, script)
	return args.Error(0)
}

func (m *MockTableRepository) CountRows(ctx context.Context) (models.RowCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RowCounts), args.Error(1)
}

func TestLoadService_Load(t *testing.T) {
	tables := models.Tables{
		Prefectures: []models.Prefecture{{ID: 13, Name: "Tokyo"}},
		Cities:      []models.City{{Code: "13101", Name: "Chiyoda", PrefID: 13}},
		Towns: []models.Town{
			{ID: 1, ZipCode: "1000001", AreaName: "Chiyoda", StreetName: "Imperial Palace", CityCode: "13101"},
		},
	}
	script := "INSERT INTO prefs(id, name) VALUES\n(13, 'Tokyo');\n\n" +
		"INSERT INTO cities(code, pref_id, name) VALUES\n('13101', 13, 'Chiyoda');\n\n" +
		"INSERT INTO towns(id, city_code, zip_code, area_name, street_name) VALUES\n" +
		"(1, '13101', '1000001', 'Chiyoda', 'Imperial Palace');\n\n"

	tests := []struct {
		name        string
		schemaErr   error
		replaceErr  error
		counts      models.RowCounts
		countErr    error
		expectError bool
	}{
		{
			name:   "successful load",
			counts: models.RowCounts{Prefectures: 1, Cities: 1, Towns: 1},
		},
		{
			name:        "schema error",
			schemaErr:   assert.AnError,
			expectError: true,
		},
		{
			name:        "apply error",
			replaceErr:  assert.AnError,
			expectError: true,
		},
		{
			name:        "count error",
			countErr:    assert.AnError,
			expectError: true,
		},
		{
			name:        "count mismatch",
			counts:      models.RowCounts{Prefectures: 1, Cities: 1, Towns: 0},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockTableRepository)
			service := NewLoadService(mockRepo)

			mockRepo.On("EnsureSchema", mock.Anything).Return(tt.schemaErr)
			if tt.schemaErr == nil {
				mockRepo.On("ReplaceAll", mock.Anything, script).Return(tt.replaceErr)
			}
			if tt.schemaErr == nil && tt.replaceErr == nil {
				mockRepo.On("CountRows", mock.Anything).Return(tt.counts, tt.countErr)
			}

			// Execute
			err := service.Load(context.Background(), tables)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
