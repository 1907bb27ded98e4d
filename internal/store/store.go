package store

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&models.Parent{},
		&models.PairCode{},
		&models.Device{},
		&models.Settings{},
	); err != nil {
		return nil, err
	}

	store := &Store{db: db}

	// Seed default data
	if err := store.seedData(); err != nil {
		log.Printf("Warning: failed to seed data: %v", err)
	}

	return store, nil
}

// generateRandomPassword generates a random password of specified length
func generateRandomPassword(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Use base64 URL encoding to get a safe, printable password
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}

func (s *Store) seedData() error {
	// Create default parent account if not exists
	var parentCount int64
	s.db.Model(&models.Parent{}).Count(&parentCount)
	if parentCount == 0 {
		password, err := generateRandomPassword(16)
		if err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		parent := &models.Parent{
			ID:           uuid.New().String(),
			Username:     "parent",
			PasswordHash: string(hash),
		}
		if err := s.db.Create(parent).Error; err != nil {
			return err
		}
		log.Printf("Created default parent account: parent / %s", password)
	}

	return nil
}

// Parent operations

func (s *Store) GetParentByUsername(username string) (*models.Parent, error) {
	var parent models.Parent
	if err := s.db.Where("username = ?", username).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &parent, nil
}

func (s *Store) GetParentByID(id string) (*models.Parent, error) {
	var parent models.Parent
	if err := s.db.Where("id = ?", id).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &parent, nil
}

func (s *Store) UpdateParent(parent *models.Parent) error {
	return s.db.Save(parent).Error
}

// Pair code operations

// GetPairCode returns the single stored pairing code, including already-used
// or already-expired ones. Callers decide validity. Never creates state.
func (s *Store) GetPairCode() (*models.PairCode, error) {
	var pc models.PairCode
	if err := s.db.Order("id DESC").First(&pc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &pc, nil
}

// ReplacePairCode deletes any prior code and stores the new one in a single
// transaction, so at most one code row ever exists.
func (s *Store) ReplacePairCode(pc *models.PairCode) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PairCode{}).Error; err != nil {
			return err
		}
		return tx.Create(pc).Error
	})
}

// ConsumePairCode atomically flips used=false to used=true. Returns
// ErrPairCodeAlreadyUsed when another request consumed the code first, which
// closes the double-verify race the handlers would otherwise have.
func (s *Store) ConsumePairCode(id int64) error {
	res := s.db.Model(&models.PairCode{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]any{"used": true, "used_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPairCodeAlreadyUsed
	}
	return nil
}

// Device operations

func (s *Store) CreateDevice(device *models.Device) error {
	return s.db.Create(device).Error
}

func (s *Store) GetDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	if err := s.db.Where("id = ?", deviceID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (s *Store) ListDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// UpdateDeviceStatus applies a heartbeat to an existing device. Updating a
// non-existent device is an error, not a create.
func (s *Store) UpdateDeviceStatus(deviceID string, battery int, network, status string, lastSync time.Time) error {
	res := s.db.Model(&models.Device{}).
		Where("id = ?", deviceID).
		Updates(map[string]any{
			"battery":   battery,
			"network":   network,
			"status":    status,
			"last_sync": lastSync,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// DeleteDevice removes the device record. Deleting an absent device is a
// no-op so unpair stays idempotent.
func (s *Store) DeleteDevice(deviceID string) error {
	return s.db.Where("id = ?", deviceID).Delete(&models.Device{}).Error
}

// Settings operations

// GetSettings returns the singleton settings row, creating it with defaults
// on first access.
func (s *Store) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{
			RealtimeAlerts:    true,
			EmailReports:      false,
			PushNotifications: true,
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) UpdateSettings(settings *models.Settings) error {
	// Select forces writes of false values, which gorm would otherwise skip
	return s.db.Model(settings).
		Select("RealtimeAlerts", "EmailReports", "PushNotifications").
		Updates(settings).Error
}

// Count operations (for periodic metrics gauge updates)

func (s *Store) CountDevices() (int64, error) {
	var count int64
	err := s.db.Model(&models.Device{}).Count(&count).Error
	return count, err
}

func (s *Store) CountOnlineDevices() (int64, error) {
	var count int64
	err := s.db.Model(&models.Device{}).
		Where("status = ?", models.DeviceStatusOnline).
		Count(&count).Error
	return count, err
}

func (s *Store) CountActivePairCodes() (int64, error) {
	var count int64
	err := s.db.Model(&models.PairCode{}).
		Where("used = ? AND expires_at > ?", false, time.Now()).
		Count(&count).Error
	return count, err
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB returns the underlying GORM database connection (for transactions)
func (s *Store) DB() *gorm.DB {
	return s.db
}
