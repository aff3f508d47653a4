// Package catalog is the lookup layer for restaurants and menu items. The
// pricing engine and the handlers go through the Store interface so tests can
// substitute a fake.
package catalog

import (
	"errors"

	"github.com/KAKULASANJAY/localbites/models"

	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

type Store interface {
	FindRestaurant(id uint) (*models.Restaurant, error)
	FindMenuItem(id uint) (*models.MenuItem, error)
	// FindRestaurantByOwner resolves the ownerID -> restaurant index. At most
	// one restaurant per owner.
	FindRestaurantByOwner(ownerID uint) (*models.Restaurant, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindRestaurant(id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) FindMenuItem(id uint) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := s.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) FindRestaurantByOwner(ownerID uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.Where("owner_id = ?", ownerID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &r, nil
}
