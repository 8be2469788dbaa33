package app

import "github.com/alexanderramin/askjira/internal/domain"

type RunDetail struct {
	Run   *domain.Run
	Items []*domain.RunItem
}
