package service

import (
	"time"

	"go-boba-pos/internal/repository"
)

type DashboardService interface {
	GetDashboardStats() (*repository.DashboardStats, error)
	GetTopItems(days, limit int) ([]repository.TopItem, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
}

func NewDashboardService(orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{orderRepo: orderRepo}
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.orderRepo.GetDashboardStats()
}

func (s *dashboardService) GetTopItems(days, limit int) ([]repository.TopItem, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.orderRepo.GetTopItems(since, limit)
}
