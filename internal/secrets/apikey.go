package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobmarket"

// GetBLSAPIKey resolves the BLS registration key: keychain first, then the
// environment for headless machines. An empty result is fine; the public
// API works keyless with a lower quota.
func GetBLSAPIKey(account string) (string, error) {
	if strings.TrimSpace(account) != "" {
		key, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}

	if key := strings.TrimSpace(os.Getenv("BLS_API_KEY")); key != "" {
		return key, nil
	}

	return "", errors.New("BLS API key not found (set it in the keychain or BLS_API_KEY)")
}

func SetBLSAPIKey(account, key string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, account, key)
}

func DeleteBLSAPIKey(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
