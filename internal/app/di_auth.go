package app

import (
	"context"
	"fmt"
	"time"

	authHTTP "github.com/allisson/notes/internal/auth/http"
	authRepository "github.com/allisson/notes/internal/auth/repository"
	authService "github.com/allisson/notes/internal/auth/service"
	authUseCase "github.com/allisson/notes/internal/auth/usecase"
	userRepository "github.com/allisson/notes/internal/user/repository"
)

// signingSecretTimeout bounds the KMS round-trip that unwraps the signing secret.
const signingSecretTimeout = 30 * time.Second

// SigningSecret returns the token signing secret, decrypting it through the
// configured KMS keeper when JWT_SECRET_KMS_KEY_URI is set.
func (c *Container) SigningSecret() ([]byte, error) {
	var err error
	c.signingSecretInit.Do(func() {
		c.signingSecret, err = c.initSigningSecret()
		if err != nil {
			c.initErrors["signingSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingSecret"]; exists {
		return nil, storedErr
	}
	return c.signingSecret, nil
}

// TokenService returns the token service bound to the signing secret.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = fmt.Errorf("failed to create password service: %w", err)
		}
	})
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// RevocationRepository returns the Redis-backed token revocation repository.
func (c *Container) RevocationRepository() (*authRepository.RedisRevocationRepository, error) {
	var err error
	c.revocationRepositoryInit.Do(func() {
		c.revocationRepository, err = c.initRevocationRepository()
		if err != nil {
			c.initErrors["revocationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationRepository"]; exists {
		return nil, storedErr
	}
	return c.revocationRepository, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the HTTP handler for registration and sessions.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.initErrors["sessionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// initSigningSecret loads the signing secret from configuration.
func (c *Container) initSigningSecret() ([]byte, error) {
	ctx, cancel := context.WithTimeout(c.ctx, signingSecretTimeout)
	defer cancel()

	secret, err := authService.LoadSigningSecret(ctx, c.config.JWTSecret, c.config.JWTSecretKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing secret: %w", err)
	}
	return secret, nil
}

// initTokenService creates the token service for authentication.
func (c *Container) initTokenService() (authService.TokenService, error) {
	secret, err := c.SigningSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing secret for token service: %w", err)
	}

	tokenService, err := authService.NewTokenService(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRevocationRepository creates the revocation repository on the Redis client.
func (c *Container) initRevocationRepository() (*authRepository.RedisRevocationRepository, error) {
	client, err := c.RedisClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis client for revocation repository: %w", err)
	}
	return authRepository.NewRedisRevocationRepository(client, c.config.RevocationTimeout), nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for session use case: %w", err)
	}

	revocationRepo, err := c.RevocationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation repository for session use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for session use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		txManager,
		userRepo,
		revocationRepo,
		tokenService,
		passwordService,
		c.config.AuthTokenExpiration,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionHandler creates the session HTTP handler.
func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}
	return authHTTP.NewSessionHandler(sessionUseCase, c.Logger()), nil
}
