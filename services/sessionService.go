package services

import (
	"DentalSimple/database"
	"DentalSimple/models"
	"DentalSimple/repositories"
	"DentalSimple/utils"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const signUpLockTTL = 10 * time.Second

// SessionService holds the single current user. The session is persisted
// sealed in the backend so it survives a restart.
type SessionService struct {
	users    repositories.UserStore
	sessions repositories.SessionStore
	sealer   *utils.SessionSealer
	locker   database.Locker
	now      func() time.Time

	mu      sync.RWMutex
	current *models.User
}

func NewSessionService(
	users repositories.UserStore,
	sessions repositories.SessionStore,
	sealer *utils.SessionSealer,
	locker database.Locker,
) *SessionService {
	return &SessionService{
		users:    users,
		sessions: sessions,
		sealer:   sealer,
		locker:   locker,
		now:      time.Now,
	}
}

// Load restores the persisted session. A token that cannot be opened leaves
// the holder signed out.
func (s *SessionService) Load(ctx context.Context) error {
	token, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if token == "" {
		return nil
	}
	user, err := s.sealer.Open(token)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session")
		return nil
	}
	s.current = user
	return nil
}

// SignUp registers a new clinic and signs it in. Once the user is stored the
// registration stands: if the session cannot be saved the user is returned
// signed out and can sign in later.
func (s *SessionService) SignUp(ctx context.Context, in utils.SignUpInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.ClinicName = strings.TrimSpace(in.ClinicName)
	if err := utils.ValidateSignUp(in); err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:         utils.NewRecordID("local", now),
		Email:      in.Email,
		ClinicName: in.ClinicName,
		CreatedAt:  now.UTC(),
	}

	lockKey := "signup_lock:" + in.Email
	err := database.WithLock(ctx, s.locker, lockKey, uuid.New().String(), signUpLockTTL, func() error {
		return s.users.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("clinic registered")
	if err := s.activate(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("registered clinic left signed out")
	}
	return user, nil
}

// SignIn activates the user registered under the email. The password is not checked.
func (s *SessionService) SignIn(ctx context.Context, in utils.SignInInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.ValidateSignIn(in); err != nil {
		return nil, err
	}
	user, err := s.users.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if err := s.activate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.ClearSession(ctx); err != nil {
		return err
	}
	s.current = nil
	return nil
}

// Current returns a copy of the signed-in user.
func (s *SessionService) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

func (s *SessionService) activate(ctx context.Context, user *models.User) error {
	token, err := s.sealer.Seal(*user)
	if err != nil {
		return utils.Persistence("seal session", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.SaveSession(ctx, token); err != nil {
		return err
	}
	copied := *user
	s.current = &copied
	return nil
}
