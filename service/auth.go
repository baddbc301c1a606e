package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers maze owners and issues their tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

var _ i.Authenticator = &Auth{}

// NewAuthService creates an Auth service.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, logger i.Logger) (*Auth, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, ErrNilDependency
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		logger:    logger,
	}, nil
}

// Register creates a user with a hashed password.
func (a *Auth) Register(username, password string) error {
	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		a.logger.Error(fmt.Sprintf("Saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("Registered user: ID=%s", user.ID))
	return nil
}

// SignIn verifies the credentials and returns a token for the user.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Generating token for %s: %s", user.ID, err))
		return nil, "", err
	}

	return user, token, nil
}
