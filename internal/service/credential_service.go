package service

import (
	"errors"

	"stock-briefing/internal/apperrors"
)

// CredentialStore is the persistence boundary for the platform API key.
type CredentialStore interface {
	Set(apiKey string) error
	Get() (string, error)
}

// APIKeySetter is implemented by remote clients that authenticate with the
// platform API key.
type APIKeySetter interface {
	SetAPIKey(key string)
}

// CredentialService manages the stored API key for the remote
// scheduling/agent platform and propagates it to the remote clients.
type CredentialService struct {
	store   CredentialStore
	clients []APIKeySetter
}

// NewCredentialService creates a new CredentialService. The given clients
// receive the key on Apply and after every Rotate.
func NewCredentialService(store CredentialStore, clients ...APIKeySetter) *CredentialService {
	return &CredentialService{
		store:   store,
		clients: clients,
	}
}

// Apply loads the stored key, if any, into the remote clients.
// A missing credential or missing fernet key is not an error: the clients
// simply stay unauthenticated.
func (s *CredentialService) Apply() error {
	key, err := s.store.Get()
	if errors.Is(err, apperrors.ErrCredentialNotFound) || errors.Is(err, apperrors.ErrFernetKeyMissing) {
		return nil
	}
	if err != nil {
		return err
	}

	s.distribute(key)
	return nil
}

// Rotate persists a new API key and propagates it to the remote clients.
func (s *CredentialService) Rotate(apiKey string) error {
	if err := s.store.Set(apiKey); err != nil {
		return err
	}

	s.distribute(apiKey)
	return nil
}

func (s *CredentialService) distribute(key string) {
	for _, client := range s.clients {
		client.SetAPIKey(key)
	}
}
