package dto

import (
	"github.com/shopspring/decimal"

	"nestling/internal/domains/franchise/model"
)

type FranchiseResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	MaxCapacity   int             `json:"max_capacity"`
	StandardRate  decimal.Decimal `json:"standard_rate"`
	PeakHourRate  decimal.Decimal `json:"peak_hour_rate"`
	OpenTime      string          `json:"open_time"`
	CloseTime     string          `json:"close_time"`
	OperatingDays []int64         `json:"operating_days"`
	IsActive      bool            `json:"is_active"`
}

func (r *FranchiseResponse) FromModel(franchise model.Franchise) {
	r.ID = franchise.ID
	r.Name = franchise.Name
	r.Address = franchise.Address
	r.City = franchise.City
	r.PostalCode = franchise.PostalCode
	r.MaxCapacity = franchise.MaxCapacity
	r.StandardRate = franchise.StandardRate
	r.PeakHourRate = franchise.PeakHourRate
	r.OpenTime = franchise.OpenTime
	r.CloseTime = franchise.CloseTime
	r.OperatingDays = franchise.OperatingDays
	r.IsActive = franchise.IsActive
}

type GetFranchisesResponse struct {
	Franchises []FranchiseResponse `json:"franchises"`
	Total      int                 `json:"total"`
}

func (r *GetFranchisesResponse) FromModels(franchises []model.Franchise) {
	r.Franchises = make([]FranchiseResponse, 0, len(franchises))

	for _, franchise := range franchises {
		res := FranchiseResponse{}
		res.FromModel(franchise)
		r.Franchises = append(r.Franchises, res)
	}

	r.Total = len(franchises)
}
