package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nestling/config"
	"nestling/infras/otel/mocks"
	franchiseMocks "nestling/internal/domains/franchise/mocks"
	"nestling/internal/domains/franchise/model"
	"nestling/internal/domains/franchise/service"
	cacheMocks "nestling/shared/cache/mocks"
	"nestling/shared/failure"
)

func newFranchise(id string) model.Franchise {
	return model.Franchise{
		ID:            id,
		Name:          "Happy Kids Downtown",
		Address:       "123 Main St",
		City:          "Seattle",
		PostalCode:    "98101",
		MaxCapacity:   15,
		StandardRate:  decimal.RequireFromString("12.00"),
		PeakHourRate:  decimal.RequireFromString("18.00"),
		OpenTime:      "07:00",
		CloseTime:     "19:00",
		OperatingDays: pq.Int64Array{1, 2, 3, 4, 5},
		IsActive:      true,
	}
}

func TestFranchiseService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := franchiseMocks.NewMockFranchise(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			id:   "franchise-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				mockRepo.EXPECT().
					Get(gomock.Any(), "franchise-1").
					Return(newFranchise("franchise-1"), nil)
				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				mockRepo.EXPECT().
					Get(gomock.Any(), "missing").
					Return(model.Franchise{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   "franchise-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				mockRepo.EXPECT().
					Get(gomock.Any(), "franchise-1").
					Return(model.Franchise{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
			assert.Equal(t, "Happy Kids Downtown", res.Name)
		})
	}
}

func TestFranchiseService_GetAllActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := franchiseMocks.NewMockFranchise(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	mockRepo.EXPECT().
		GetAllActive(gomock.Any()).
		Return([]model.Franchise{newFranchise("f1"), newFranchise("f2")}, nil)
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAllActive(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Franchises, 2)
}
