package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type SellerService struct {
	Sellers *repos.SellerRepo
}

func NewSellerService(sellers *repos.SellerRepo) *SellerService {
	return &SellerService{Sellers: sellers}
}

func (s *SellerService) Create(userID, name string) (domain.Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Seller{}, errors.New("missing seller name")
	}
	sel := domain.Seller{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := s.Sellers.Create(sel); err != nil {
		return domain.Seller{}, err
	}
	return sel, nil
}

func (s *SellerService) List(userID string) ([]domain.Seller, error) {
	return s.Sellers.List(userID)
}

func (s *SellerService) Get(userID, id string) (domain.Seller, error) {
	return s.Sellers.Get(userID, id)
}

func (s *SellerService) Rename(userID, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("missing seller name")
	}
	return s.Sellers.Rename(userID, id, name)
}

// Delete fails while products still reference the seller.
func (s *SellerService) Delete(userID, id string) error {
	return s.Sellers.Delete(userID, id)
}
