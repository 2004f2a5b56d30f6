package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/cryptox"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
	"github.com/dmitrijs2005/artkeeper/internal/studio/state"
)

// SetKey stores the generation API key, sealed with a key derived from a
// user passphrase. The plaintext key never reaches the metadata document.
func (a *App) SetKey(ctx context.Context) error {
	apiKey, err := GetSimpleText(a.reader, "API key", os.Stdout)
	if err != nil || apiKey == "" {
		fmt.Println("Cancelled.")
		return err
	}
	passphrase, err := GetPassword(os.Stdout, "Passphrase to protect the key")
	if err != nil {
		return err
	}

	cred, err := sealCredential([]byte(apiKey), passphrase)
	if err != nil {
		fmt.Println("Cannot seal credential:", err)
		return err
	}

	a.store.Dispatch(state.SetCredential{Credential: cred})
	a.connectClient(apiKey)
	fmt.Println("API key stored.")
	return nil
}

// Unlock decrypts the stored credential and connects the generation client.
// Called once at startup and on demand; a missing credential is not an
// error, the user just stays locked.
func (a *App) Unlock(ctx context.Context) error {
	cred := a.store.State().Credential
	if cred == nil {
		fmt.Println("No API key stored yet. Use 'setkey'.")
		return nil
	}

	passphrase, err := GetPassword(os.Stdout, "Passphrase")
	if err != nil {
		return err
	}

	apiKey, err := openCredential(cred, passphrase)
	if err != nil {
		fmt.Println("Wrong passphrase.")
		return err
	}

	a.connectClient(string(apiKey))
	fmt.Println("Unlocked.")
	return nil
}

func sealCredential(apiKey, passphrase []byte) (*models.Credential, error) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	key := cryptox.DeriveKey(passphrase, salt)
	ciphertext, nonce, err := cryptox.Encrypt(apiKey, key)
	if err != nil {
		return nil, err
	}
	return &models.Credential{Ciphertext: ciphertext, Nonce: nonce, Salt: salt}, nil
}

func openCredential(cred *models.Credential, passphrase []byte) ([]byte, error) {
	if cred == nil {
		return nil, common.ErrCredentialNotFound
	}
	key := cryptox.DeriveKey(passphrase, cred.Salt)
	plaintext, err := cryptox.Decrypt(cred.Ciphertext, cred.Nonce, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPassphrase, err)
	}
	return plaintext, nil
}
