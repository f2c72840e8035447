package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/msavelyev/notedesk/internal/common"
	"github.com/msavelyev/notedesk/internal/server/repositories/users"
)

type UserService struct {
	repo users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo}
}

// Verify checks a credential pair against the user store. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, common.ErrorInternal
	}

	return subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) == 1, nil
}
