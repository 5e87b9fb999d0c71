package identity

import (
	"context"
	"strings"
	"time"

	"github.com/citytickets/backend/internal/domain/identity"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionIssuer signs session tokens for authenticated users
type SessionIssuer interface {
	Generate(user *identity.User) (string, error)
}

// CodeMailer delivers one-time codes to users
type CodeMailer interface {
	SendPasswordResetCode(to, code string) error
	SendProfileEditCode(to, code string) error
}

// EditGrants stores time-boxed profile-edit authorizations
type EditGrants interface {
	Grant(ctx context.Context, userID uuid.UUID) error
	Check(ctx context.Context, userID uuid.UUID) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
}

// AuthService handles sign-up, sign-in and account self-service
type AuthService struct {
	users    identity.UserRepository
	codes    identity.VerificationCodeRepository
	sessions SessionIssuer
	mailer   CodeMailer
	grants   EditGrants
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService
func NewAuthService(
	users identity.UserRepository,
	codes identity.VerificationCodeRepository,
	sessions SessionIssuer,
	mailer CodeMailer,
	grants EditGrants,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		codes:    codes,
		sessions: sessions,
		mailer:   mailer,
		grants:   grants,
		logger:   logger,
		now:      time.Now,
	}
}

// SignUpRequest carries registration input
type SignUpRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new customer account and signs them in
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*identity.User, string, error) {
	user, err := identity.NewUser(req.Phone, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	if existing, err := s.users.FindByPhone(ctx, user.Phone); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", shared.NewDomainError("PHONE_TAKEN", "An account with this phone already exists")
	}
	if existing, err := s.users.FindByEmail(ctx, user.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Generate(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// SignInRequest carries login input. Login accepts the phone number in any
// formatting or the email address.
type SignInRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var errBadCredentials = shared.NewDomainError("BAD_CREDENTIALS", "Wrong phone/email or password")

// SignIn authenticates a customer by phone or email.
// Staff accounts cannot sign in through the public endpoint.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*identity.User, string, error) {
	user, err := s.findByLogin(ctx, req.Login)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.VerifyPassword(req.Password) {
		return nil, "", errBadCredentials
	}
	if user.Staff {
		return nil, "", shared.NewDomainError("STAFF_LOGIN_BLOCKED", "Staff accounts must use the staff entrance")
	}
	if !user.Active {
		return nil, "", shared.ErrForbidden
	}

	token, err := s.sessions.Generate(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// SignInStaff authenticates a staff account for check-in duty
func (s *AuthService) SignInStaff(ctx context.Context, req SignInRequest) (*identity.User, string, error) {
	user, err := s.findByLogin(ctx, req.Login)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.VerifyPassword(req.Password) {
		return nil, "", errBadCredentials
	}
	if !user.Staff {
		return nil, "", errBadCredentials
	}
	if !user.Active {
		return nil, "", shared.ErrForbidden
	}

	token, err := s.sessions.Generate(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) findByLogin(ctx context.Context, login string) (*identity.User, error) {
	login = strings.TrimSpace(login)
	if normalized := identity.NormalizePhone(login); normalized != "" {
		return s.users.FindByPhone(ctx, normalized)
	}
	return s.users.FindByEmail(ctx, strings.ToLower(login))
}

// Profile returns the account for the given user id
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

// RequestPasswordReset issues and emails a password reset code. To avoid
// leaking which emails exist, an unknown email succeeds silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := s.issueCode(ctx, user.ID, identity.CodeKindPasswordReset)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetCode(user.Email, code.Code); err != nil {
		s.logger.Error("failed to send password reset code",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return shared.NewDomainError("MAIL_ERROR", "Failed to send the code")
	}
	return nil
}

// ConfirmPasswordReset consumes the code and sets the new password
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, codeValue, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return shared.NewDomainError("CODE_INVALID", "Invalid or expired code")
	}

	if err := s.consumeCode(ctx, user.ID, identity.CodeKindPasswordReset, codeValue); err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// RequestProfileEditCode issues and emails a profile-edit confirmation code
func (s *AuthService) RequestProfileEditCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	code, err := s.issueCode(ctx, user.ID, identity.CodeKindProfileEdit)
	if err != nil {
		return err
	}

	if err := s.mailer.SendProfileEditCode(user.Email, code.Code); err != nil {
		s.logger.Error("failed to send profile edit code",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return shared.NewDomainError("MAIL_ERROR", "Failed to send the code")
	}
	return nil
}

// ConfirmProfileEditCode consumes the code and opens a time-boxed edit grant
func (s *AuthService) ConfirmProfileEditCode(ctx context.Context, userID uuid.UUID, codeValue string) error {
	if err := s.consumeCode(ctx, userID, identity.CodeKindProfileEdit, codeValue); err != nil {
		return err
	}
	return s.grants.Grant(ctx, userID)
}

// UpdateProfileRequest carries profile change input
type UpdateProfileRequest struct {
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateProfile changes contact details. It requires a live edit grant,
// which is consumed on success.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*identity.User, error) {
	ok, err := s.grants.Check(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError("EDIT_NOT_CONFIRMED", "Confirm the change with the emailed code first")
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateContact(req.Phone, req.Email); err != nil {
		return nil, err
	}

	if other, err := s.users.FindByPhone(ctx, user.Phone); err != nil {
		return nil, err
	} else if other != nil && other.ID != user.ID {
		return nil, shared.NewDomainError("PHONE_TAKEN", "An account with this phone already exists")
	}
	if other, err := s.users.FindByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if other != nil && other.ID != user.ID {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.grants.Revoke(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke edit grant",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	return user, nil
}

// issueCode supersedes any outstanding codes of the kind and stores a new one
func (s *AuthService) issueCode(ctx context.Context, userID uuid.UUID, kind identity.CodeKind) (*identity.VerificationCode, error) {
	if err := s.codes.SupersedeActive(ctx, userID, kind); err != nil {
		return nil, err
	}

	code, err := identity.NewVerificationCode(userID, kind)
	if err != nil {
		return nil, err
	}
	if err := s.codes.Save(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *AuthService) consumeCode(ctx context.Context, userID uuid.UUID, kind identity.CodeKind, value string) error {
	code, err := s.codes.FindLatestActive(ctx, userID, kind, value)
	if err != nil {
		return err
	}
	if code == nil {
		return shared.NewDomainError("CODE_INVALID", "Invalid or expired code")
	}
	if err := code.Consume(s.now()); err != nil {
		return err
	}
	return s.codes.Update(ctx, code)
}
