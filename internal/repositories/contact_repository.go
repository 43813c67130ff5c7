package repositories

import (
	"errors"

	"github.com/Heshmert/P2-31499269/internal/models"

	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

type ContactRepository interface {
	Create(contact *models.Contact) error
	FindByEmail(email string) (*models.Contact, error)
	FindAll() ([]models.Contact, error)
}

type ContactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *ContactRepositoryImpl) FindByEmail(email string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.Where("email = ?", email).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) FindAll() ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}
