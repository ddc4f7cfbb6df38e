package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"foodiefriends/internal/repository"
)

var (
	ErrWrongPIN   = errors.New("wrong PIN")
	ErrInvalidPIN = errors.New("PIN must be 4 to 8 digits")
)

// ParentService guards the grown-ups area behind a PIN. The PIN is stored
// bcrypt-hashed in the settings table, never in plain text.
type ParentService struct {
	settings *repository.SettingsRepository
}

// NewParentService creates a new parent gate service
func NewParentService(settings *repository.SettingsRepository) *ParentService {
	return &ParentService{settings: settings}
}

// EnsurePIN seeds the PIN hash from the configured default if none is set.
// Called once at startup so a fresh install has a working gate.
func (s *ParentService) EnsurePIN(defaultPIN string) error {
	_, ok, err := s.settings.Get(repository.SettingParentPINHash)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default PIN: %w", err)
	}
	return s.settings.Set(repository.SettingParentPINHash, string(hash))
}

// VerifyPIN checks a PIN entry against the stored hash
func (s *ParentService) VerifyPIN(pin string) error {
	hash, ok, err := s.settings.Get(repository.SettingParentPINHash)
	if err != nil {
		return fmt.Errorf("failed to read PIN hash: %w", err)
	}
	if !ok {
		return ErrWrongPIN
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}

// ChangePIN replaces the PIN after verifying the current one
func (s *ParentService) ChangePIN(currentPIN, newPIN string) error {
	if err := s.VerifyPIN(currentPIN); err != nil {
		return err
	}
	if err := validatePIN(newPIN); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	return s.settings.Set(repository.SettingParentPINHash, string(hash))
}

// BackupEmail returns the configured backup recipient, if any
func (s *ParentService) BackupEmail() (string, error) {
	email, _, err := s.settings.Get(repository.SettingBackupEmail)
	return email, err
}

// SetBackupEmail stores the backup recipient address
func (s *ParentService) SetBackupEmail(email string) error {
	return s.settings.Set(repository.SettingBackupEmail, strings.TrimSpace(email))
}

func validatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 8 {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ErrInvalidPIN
		}
	}
	return nil
}
