package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Result is a successful login or registration: the account plus its token.
type Result struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type UseCase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a new active account with the User role. Usernames and
// emails must be unique.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	if taken, err := uc.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}
	if taken, err := uc.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, created)
}

// Login verifies the credentials and issues a fresh token. Unknown usernames,
// wrong passwords and inactive accounts all fail the same way.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*Result, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, user)
}

// CurrentUser resolves the account behind an authenticated request.
func (uc *UseCase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// VerifyToken parses and validates a bearer token and returns the user id it
// was issued to.
func (uc *UseCase) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	userID, _ := claims["userid"].(string)
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}

// RevokeSession drops the Redis session record, invalidating the sid claim.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Result, error) {
	expiresAt := time.Now().Add(uc.tokenTTL)

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("failed to persist session", zap.String("user_id", user.ID), zap.Error(err))
	}

	claims := jwt.MapClaims{
		"userid":   user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"sid":      session.ID,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to sign token", err)
	}

	return &Result{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
