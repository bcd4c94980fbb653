package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapAnonymous creates the reserved anonymous account when it does not
// exist yet. Every post owns a real user reference, so anonymous posting
// needs this account to attribute to. It is idempotent, and the generated
// password is discarded: the account is never meant to log in.
func BootstrapAnonymous(ctx context.Context, repo UserRepository, cfg Config) error {
	if !cfg.BootstrapAnonymous {
		return nil
	}

	if _, err := repo.FindByUsername(ctx, AnonymousUsername); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	password, err := generatePassword(32)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := repo.Create(ctx, AnonymousUsername, string(hash), RoleUser); err != nil {
		// Another instance may have won the race; that is fine.
		if errors.Is(err, ErrAlreadyExists) {
			return nil
		}
		return err
	}

	log.Info().Str("username", AnonymousUsername).Msg("reserved anonymous account created")
	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
