package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"stock-briefing/internal/apperrors"
)

// CredentialRepository stores the API key for the remote scheduling/agent
// platform. The key is fernet-encrypted at rest; the table holds at most one row.
type CredentialRepository struct {
	db        *sql.DB
	fernetKey string
}

// NewCredentialRepository creates a new CredentialRepository.
// fernetKey is the base64-encoded fernet key used to encrypt stored credentials;
// it may be empty, in which case Set and Get fail with ErrFernetKeyMissing.
func NewCredentialRepository(db *sql.DB, fernetKey string) *CredentialRepository {
	return &CredentialRepository{db: db, fernetKey: fernetKey}
}

// Set stores the service API key, replacing any previously stored key.
func (r *CredentialRepository) Set(apiKey string) error {
	key, err := r.decodeKey()
	if err != nil {
		return err
	}

	encrypted, err := fernet.EncryptAndSign([]byte(apiKey), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt service credential: %w", err)
	}

	// Single-row table: clear before insert instead of upserting on a fixed id.
	if _, err := r.db.Exec(`DELETE FROM service_credential`); err != nil {
		return fmt.Errorf("failed to clear service credential: %w", err)
	}

	query := `
		INSERT INTO service_credential (id, api_key, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	if _, err := r.db.Exec(query, uuid.New().String(), string(encrypted)); err != nil {
		return fmt.Errorf("failed to store service credential: %w", err)
	}

	return nil
}

// Get retrieves and decrypts the stored service API key.
// Returns apperrors.ErrCredentialNotFound if no key has been stored.
func (r *CredentialRepository) Get() (string, error) {
	key, err := r.decodeKey()
	if err != nil {
		return "", err
	}

	var encrypted string
	err = r.db.QueryRow(`SELECT api_key FROM service_credential LIMIT 1`).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query service credential: %w", err)
	}

	// TTL 0 disables token expiry: the stored key is long-lived configuration.
	plaintext := fernet.VerifyAndDecrypt([]byte(encrypted), 0*time.Second, []*fernet.Key{key})
	if plaintext == nil {
		return "", apperrors.ErrCredentialDecrypt
	}

	return string(plaintext), nil
}

func (r *CredentialRepository) decodeKey() (*fernet.Key, error) {
	if r.fernetKey == "" {
		return nil, apperrors.ErrFernetKeyMissing
	}

	key, err := fernet.DecodeKey(r.fernetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}

	return key, nil
}
