package auth

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"LoveForTennis/models/dto"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/services/identity"
	"LoveForTennis/services/role"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgLoginSuccess       = "Login successful."
	msgLockedOut          = "Account temporarily locked due to too many failed login attempts. Please try again later."
	msgLoginError         = "An error occurred during login. Please try again."
	msgEmailTaken         = "Email is already registered."
	msgInvalidEmail       = "Invalid email address."
	msgPasswordMismatch   = "Passwords do not match."
	msgRegisterSuccess    = "Registration successful."
	msgRegisterError      = "An error occurred during registration. Please try again."
	msgForgotPassword     = "If the email exists, a password reset link has been sent."
	msgInvalidReset       = "Invalid reset request."
	msgResetSuccess       = "Password has been reset successfully."
	msgResetError         = "An error occurred during password reset. Please try again."
)

// LoginThrottle counts failed logins per email.
type LoginThrottle interface {
	LoginFailures(ctx context.Context, email string) (int64, error)
	RegisterLoginFailure(ctx context.Context, email string, window time.Duration) (int64, error)
	ClearLoginFailures(ctx context.Context, email string) error
}

type Options struct {
	// MaxFailures <= 0 disables lockout.
	MaxFailures int
	Lockout     time.Duration
}

type Service struct {
	users    repository.UserRepository
	roles    *role.Service
	identity identity.Provider
	throttle LoginThrottle
	opts     Options
	now      func() time.Time

	decoyOnce sync.Once
	decoyHash string
}

func NewService(users repository.UserRepository, roles *role.Service, provider identity.Provider, throttle LoginThrottle, opts Options) *Service {
	return &Service{
		users:    users,
		roles:    roles,
		identity: provider,
		throttle: throttle,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func failure(message string) dto.AuthResponse {
	return dto.AuthResponse{Success: false, Message: message}
}

func (s *Service) throttled() bool {
	return s.throttle != nil && s.opts.MaxFailures > 0
}

func (s *Service) Login(ctx context.Context, req dto.LoginRequest) dto.AuthResponse {
	email := models.NormalizeEmail(req.Email)

	if s.throttled() {
		failures, err := s.throttle.LoginFailures(ctx, email)
		if err != nil {
			log.Printf("[AUTH] Error reading login failures for %s: %v", email, err)
		} else if failures >= int64(s.opts.MaxFailures) {
			return failure(msgLockedOut)
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			s.identity.VerifyPassword(s.decoy(), req.Password)
			s.registerFailure(ctx, email)
			return failure(msgInvalidCredentials)
		}
		log.Printf("[AUTH] Error loading user %s: %v", email, err)
		return failure(msgLoginError)
	}

	if !s.identity.VerifyPassword(user.PasswordHash, req.Password) {
		s.registerFailure(ctx, email)
		return failure(msgInvalidCredentials)
	}

	if s.throttled() {
		if err := s.throttle.ClearLoginFailures(ctx, email); err != nil {
			log.Printf("[AUTH] Error clearing login failures for %s: %v", email, err)
		}
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("[AUTH] Error stamping last login of %s: %v", user.ID, err)
		return failure(msgLoginError)
	}
	user.LastLoginAt = &now

	info := s.userInfo(ctx, user)
	token, err := s.identity.IssueAccessToken(user, info.Roles)
	if err != nil {
		log.Printf("[AUTH] Error issuing access token for %s: %v", user.ID, err)
		return failure(msgLoginError)
	}

	log.Printf("[AUTH] User %s logged in", user.Email)
	return dto.AuthResponse{Success: true, Message: msgLoginSuccess, User: info, AccessToken: token}
}

func (s *Service) registerFailure(ctx context.Context, email string) {
	if !s.throttled() {
		return
	}
	if _, err := s.throttle.RegisterLoginFailure(ctx, email, s.opts.Lockout); err != nil {
		log.Printf("[AUTH] Error counting login failure for %s: %v", email, err)
	}
}

// decoy is a hash checked for unknown emails so that they cost the same
// bcrypt work as a wrong password.
func (s *Service) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.identity.HashPassword("no-such-user-" + s.now().Format(time.RFC3339Nano))
		if err != nil {
			log.Printf("[AUTH] Error hashing login decoy: %v", err)
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) dto.AuthResponse {
	email := models.NormalizeEmail(req.Email)
	if !validEmail(email) {
		return failure(msgInvalidEmail)
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return failure(msgPasswordMismatch)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		log.Printf("[AUTH] Error checking email %s: %v", email, err)
		return failure(msgRegisterError)
	}
	if exists {
		return failure(msgEmailTaken)
	}

	if problems := identity.ValidatePassword(req.Password); len(problems) > 0 {
		return failure("Registration failed: " + strings.Join(problems, ", "))
	}

	hash, err := s.identity.HashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] Error hashing password for %s: %v", email, err)
		return failure(msgRegisterError)
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return failure(msgEmailTaken)
		}
		log.Printf("[AUTH] Error creating user %s: %v", email, err)
		return failure(msgRegisterError)
	}

	if !s.roles.AssignRole(ctx, user, models.RolePlayer) {
		log.Printf("[AUTH] User %s registered without the %s role", user.ID, models.RolePlayer)
	}

	log.Printf("[AUTH] User %s registered", user.Email)
	return dto.AuthResponse{Success: true, Message: msgRegisterSuccess, User: s.userInfo(ctx, user)}
}

// ForgotPassword answers the same way whether or not the email exists.
// The issued token is only logged; delivering it is left to a mail
// integration.
func (s *Service) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) dto.AuthResponse {
	response := dto.AuthResponse{Success: true, Message: msgForgotPassword}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Printf("[AUTH] Error loading user for password reset: %v", err)
		}
		return response
	}

	token, err := s.identity.IssueResetToken(ctx, user)
	if err != nil {
		log.Printf("[AUTH] Error issuing reset token for %s: %v", user.ID, err)
		return response
	}
	log.Printf("[AUTH] Password reset token for %s: %s", user.Email, token)
	return response
}

func (s *Service) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) dto.AuthResponse {
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.NewPassword {
		return failure(msgPasswordMismatch)
	}
	if problems := identity.ValidatePassword(req.NewPassword); len(problems) > 0 {
		return failure("Password reset failed: " + strings.Join(problems, ", "))
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return failure(msgInvalidReset)
		}
		log.Printf("[AUTH] Error loading user for password reset: %v", err)
		return failure(msgResetError)
	}

	ok, err := s.identity.ConsumeResetToken(ctx, user.Email, req.Token)
	if err != nil {
		log.Printf("[AUTH] Error validating reset token for %s: %v", user.ID, err)
		return failure(msgResetError)
	}
	if !ok {
		return failure(msgInvalidReset)
	}

	hash, err := s.identity.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("[AUTH] Error hashing password for %s: %v", user.ID, err)
		return failure(msgResetError)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Printf("[AUTH] Error storing password for %s: %v", user.ID, err)
		return failure(msgResetError)
	}

	log.Printf("[AUTH] Password reset for %s", user.Email)
	return dto.AuthResponse{Success: true, Message: msgResetSuccess}
}

// GetUserInfo returns nil when the user does not exist.
func (s *Service) GetUserInfo(ctx context.Context, userID string) *dto.UserInfo {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Printf("[AUTH] Error loading user %s: %v", userID, err)
		}
		return nil
	}
	return s.userInfo(ctx, user)
}

func (s *Service) userInfo(ctx context.Context, user *models.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
		Roles:       s.roles.GetRoles(ctx, user),
	}
}
