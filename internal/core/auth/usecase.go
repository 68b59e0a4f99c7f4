package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

type UseCase struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	tokens     ports.TokenManager
	userStores ports.UserStoreFactory
	logger     ports.Logger
}

type UseCaseDependencies struct {
	Users      ports.UserRepository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenManager
	UserStores ports.UserStoreFactory
	Logger     ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Users == nil {
		return nil, errors.NewValidationError("user repository is required")
	}
	if deps.Hasher == nil {
		return nil, errors.NewValidationError("password hasher is required")
	}
	if deps.Tokens == nil {
		return nil, errors.NewValidationError("token manager is required")
	}
	if deps.UserStores == nil {
		return nil, errors.NewValidationError("user stores are required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		users:      deps.Users,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		userStores: deps.UserStores,
		logger:     deps.Logger,
	}, nil
}

// Register creates the account and signs it in
func (uc *UseCase) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	if err := req.IsValid(); err != nil {
		return nil, err
	}
	req = req.Normalize()

	exists, err := uc.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, errors.NewAlreadyExistsError(msgUserExists)
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &ports.UserData{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.IsAlreadyExistsError(err) {
			return nil, errors.NewAlreadyExistsError(msgUserExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.logger.Info("User registered", ports.F("user_id", user.ID))
	return uc.signIn(ctx, user, MessageRegistered)
}

func (uc *UseCase) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	if err := req.IsValid(); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		uc.logger.Debug("Password mismatch", ports.F("user_id", user.ID))
		return nil, errors.NewUnauthorizedError(msgInvalidCredentials)
	}

	return uc.signIn(ctx, user, MessageLoggedIn)
}

func (uc *UseCase) signIn(ctx context.Context, user *ports.UserData, message string) (*Result, error) {
	token, err := uc.tokens.Generate(ctx, ports.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	sessionUser := toSessionUser(user)
	sessions := planner.NewSessionManager(uc.userStores.ForUser(user.ID))
	if err := sessions.StartSession(ctx, token, sessionUser); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	return &Result{Message: message, Token: token, User: sessionUser}, nil
}

// Authenticate resolves a bearer token to the live session it belongs to.
// A token that verifies but no longer matches the stored session (logged out
// or replaced by a newer login) is rejected.
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*planner.Session, error) {
	if token == "" {
		return nil, errors.NewUnauthorizedError(msgTokenRequired)
	}

	claims, err := uc.tokens.Validate(ctx, token)
	if err != nil {
		return nil, errors.NewTokenError(msgTokenInvalid, err)
	}

	session, err := planner.NewSessionManager(uc.userStores.ForUser(claims.UserID)).CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.Token != token {
		return nil, errors.NewTokenError(msgTokenInvalid, nil)
	}
	return session, nil
}

// Me returns the stored account of the signed-in user
func (uc *UseCase) Me(ctx context.Context, user planner.SessionUser) (*planner.SessionUser, error) {
	stored, err := uc.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	me := toSessionUser(stored)
	return &me, nil
}

// Logout ends the session; saved plans are kept
func (uc *UseCase) Logout(ctx context.Context, user planner.SessionUser) error {
	if err := planner.NewSessionManager(uc.userStores.ForUser(user.ID)).EndSession(ctx); err != nil {
		return err
	}
	uc.logger.Info("User logged out", ports.F("user_id", user.ID))
	return nil
}

// Status derives the navigation state for an optional bearer token
func (uc *UseCase) Status(ctx context.Context, token string) planner.AuthView {
	if token == "" {
		return planner.DeriveAuthView(nil)
	}

	session, err := uc.Authenticate(ctx, token)
	if err != nil {
		return planner.DeriveAuthView(nil)
	}
	return planner.DeriveAuthView(session)
}

func toSessionUser(user *ports.UserData) planner.SessionUser {
	return planner.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
