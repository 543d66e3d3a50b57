// Package services holds the server's business logic on top of the
// repositories: identity registration and login, session resolution, the
// shared category catalog and the ownership-scoped resources.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/geomap/internal/common"
	"github.com/dmitrijs2005/geomap/internal/server/auth"
	"github.com/dmitrijs2005/geomap/internal/server/models"
	"github.com/dmitrijs2005/geomap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geomap/internal/server/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

var (
	errUserExists         = common.NewError(common.ErrorAlreadyExists, "User already exists")
	errInvalidCredentials = common.NewError(common.ErrorUnauthorized, "Invalid credentials")
)

// UserService registers identities, checks credentials and resolves
// session tokens back to identities.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenIssuer
	// decoy is verified against when the email is unknown so both login
	// failures cost one hash comparison.
	decoy string
}

func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) (*UserService, error) {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("decoy digest: %w", err)
	}
	return &UserService{repomanager: m, hasher: hasher, tokens: tokens, decoy: decoy}, nil
}

// Register creates an identity and signs it in. A username or email that is
// already taken yields one generic conflict, whichever field collided.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Repositories().Users

	_, err := repo.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return nil, errUserExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error checking user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validation.New("password must be at most 72 bytes")
		}
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{ID: uuid.NewString(), Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		// lost a concurrent registration race to the unique index
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, errUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.signIn(user)
}

// Login checks credentials. An unknown email and a wrong password produce
// the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Repositories().Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.decoy)
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	return s.signIn(user)
}

// Identify resolves a session token to the identity it was issued for.
// Every failure to do so is common.ErrorUnauthenticated.
func (s *UserService) Identify(ctx context.Context, token string) (*models.PublicUser, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthenticated, err)
	}
	if !validID(userID) {
		return nil, fmt.Errorf("%w: malformed subject", common.ErrorUnauthenticated)
	}

	user, err := s.repomanager.Repositories().Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrorUnauthenticated)
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

func (s *UserService) signIn(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
