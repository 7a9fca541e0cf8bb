package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	authDomain "github.com/allisson/notes/internal/auth/domain"
)

// LoadSigningSecret returns the token signing secret.
//
// Without keyURI the configured secret is used as is. With keyURI the secret
// must be base64-encoded ciphertext, which is decrypted by the KMS keeper
// opened from keyURI (gcpkms://, awskms://, azurekeyvault://, hashivault://
// or base64key://).
func LoadSigningSecret(ctx context.Context, secret, keyURI string) ([]byte, error) {
	if secret == "" {
		return nil, authDomain.ErrEmptySigningSecret
	}
	if keyURI == "" {
		return []byte(secret), nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped signing secret: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, authDomain.ErrEmptySigningSecret
	}

	return plaintext, nil
}
