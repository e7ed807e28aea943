package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/prerna-auth/internal/domain"
	"github.com/prerna-auth/internal/pkg/id"
	"github.com/prerna-auth/internal/pkg/otpcode"
	"github.com/prerna-auth/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultFullName   = "User"
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72

	defaultBcryptCost  = 10
	defaultOTPValidity = 5 * time.Minute
)

// Caller-facing messages.
const (
	msgSignupFieldsRequired = "Full name, phone number & password required"
	msgLoginFieldsRequired  = "Phone number and password required"
	msgOTPFieldsRequired    = "Phone number and OTP required"
	msgInvalidPhone         = "Invalid phone number"
	msgWeakPassword         = "Password must be at least 6 characters"
	msgLongPassword         = "Password must be at most 72 bytes"
	msgPhoneRegistered      = "Phone number already registered"
	msgUserNotFound         = "User not found. Please signup first."
	msgBadCredentials       = "Incorrect password or credentials."
	msgOTPNotFound          = "OTP not found or expired"
	msgOTPExpired           = "OTP expired"
	msgOTPInvalid           = "Invalid OTP"
	msgSendFailed           = "Failed to send OTP"
)

// AuthResult is returned by every successful identity verification.
type AuthResult struct {
	Token string
	User  *domain.User
}

type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error)
	SendOTP(ctx context.Context, req domain.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*AuthResult, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type otpStore interface {
	Create(ctx context.Context, o *domain.OtpRecord) error
	Latest(ctx context.Context, phone string) (*domain.OtpRecord, error)
	DeleteAll(ctx context.Context, phone string) (int, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type ServiceDeps struct {
	UserRepo    userStore
	OtpRepo     otpStore
	SMSSender   smsSender
	JWTProvider tokenSigner
	BcryptCost  int
	OTPValidity time.Duration
	Now         func() time.Time
}

type service struct {
	userRepo    userStore
	otpRepo     otpStore
	smsSender   smsSender
	jwtProvider tokenSigner
	bcryptCost  int
	otpValidity time.Duration
	now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		userRepo:    deps.UserRepo,
		otpRepo:     deps.OtpRepo,
		smsSender:   deps.SMSSender,
		jwtProvider: deps.JWTProvider,
		bcryptCost:  deps.BcryptCost,
		otpValidity: deps.OTPValidity,
		now:         deps.Now,
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = defaultBcryptCost
	}
	if s.otpValidity == 0 {
		s.otpValidity = defaultOTPValidity
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*AuthResult, error) {
	if req.FullName == "" || req.PhoneNumber == "" || req.Password == "" {
		return nil, domain.NewError(domain.ErrBadRequest, msgSignupFieldsRequired)
	}
	if !validate.Phone(req.PhoneNumber) {
		return nil, domain.NewError(domain.ErrBadRequest, msgInvalidPhone)
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrBadRequest, msgWeakPassword)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, domain.NewError(domain.ErrBadRequest, msgLongPassword)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, domain.NewError(domain.ErrBadRequest, err.Error())
	}

	_, err := s.userRepo.GetByPhone(ctx, req.PhoneNumber)
	switch {
	case err == nil:
		return nil, domain.NewError(domain.ErrConflict, msgPhoneRegistered)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.Dependency("lookup user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	u := &domain.User{
		UserID:       id.NewAt(now),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Address:      req.Address,
		Interest:     req.Interest,
		Age:          req.Age,
		Language:     req.Language,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Nothing is written unless a token can be issued.
	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrConflict, msgPhoneRegistered)
		}
		return nil, domain.Dependency("create user", err)
	}
	slog.InfoContext(ctx, "user signed up", "user_id", u.UserID)
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error) {
	phone := req.PhoneNumber
	if phone == "" || req.Password == "" {
		return nil, domain.NewError(domain.ErrBadRequest, msgLoginFieldsRequired)
	}
	if !validate.Phone(phone) {
		return nil, domain.NewError(domain.ErrBadRequest, msgInvalidPhone)
	}

	u, err := s.userRepo.GetByPhone(ctx, phone)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, msgUserNotFound)
	}
	if err != nil {
		return nil, domain.Dependency("lookup user", err)
	}
	// OTP-only accounts have no hash and fail the same way as a wrong password.
	if !u.HasPassword() || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.NewError(domain.ErrUnauthorized, msgBadCredentials)
	}

	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// SendOTP stores a new challenge and texts the code. Earlier pending
// challenges for the phone stay in place; the record is kept even when the
// SMS cannot be delivered.
func (s *service) SendOTP(ctx context.Context, req domain.SendOTPRequest) error {
	phone := req.PhoneNumber
	if !validate.Phone(phone) {
		return domain.NewError(domain.ErrBadRequest, msgInvalidPhone)
	}

	code, err := otpcode.New()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	rec := &domain.OtpRecord{
		OtpID:       id.NewAt(now),
		PhoneNumber: phone,
		CodeHash:    string(hash),
		CreatedAt:   now,
	}
	if err := s.otpRepo.Create(ctx, rec); err != nil {
		return domain.Dependency("store otp", err)
	}
	if err := s.smsSender.SendSMS(ctx, phone, "Your OTP is "+code); err != nil {
		slog.WarnContext(ctx, "otp sms dispatch failed", "otp_id", rec.OtpID, "err", err)
		return domain.Dependency(msgSendFailed, err)
	}
	return nil
}

// VerifyOTP checks the code against the newest pending challenge only. Success
// consumes every challenge for the phone; a wrong code consumes nothing.
func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*AuthResult, error) {
	phone := req.PhoneNumber
	code := req.OTP
	if phone == "" || code == "" {
		return nil, domain.NewError(domain.ErrBadRequest, msgOTPFieldsRequired)
	}
	if !validate.Phone(phone) {
		return nil, domain.NewError(domain.ErrBadRequest, msgInvalidPhone)
	}

	rec, err := s.otpRepo.Latest(ctx, phone)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, msgOTPNotFound)
	}
	if err != nil {
		return nil, domain.Dependency("lookup otp", err)
	}

	if rec.Expired(s.now(), s.otpValidity) {
		if _, err := s.otpRepo.DeleteAll(ctx, phone); err != nil {
			slog.WarnContext(ctx, "failed to delete expired otp records", "err", err)
		}
		return nil, domain.NewError(domain.ErrExpired, msgOTPExpired)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		return nil, domain.NewError(domain.ErrUnauthorized, msgOTPInvalid)
	}
	if _, err := s.otpRepo.DeleteAll(ctx, phone); err != nil {
		return nil, domain.Dependency("consume otp", err)
	}

	u, err := s.findOrCreateByPhone(ctx, phone, req.FullName)
	if err != nil {
		return nil, err
	}
	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// findOrCreateByPhone returns the user owning phone, creating a password-less
// one on first verification.
func (s *service) findOrCreateByPhone(ctx context.Context, phone, fullName string) (*domain.User, error) {
	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Dependency("lookup user", err)
	}

	name := fullName
	if name == "" {
		name = defaultFullName
	}
	now := s.now().UTC()
	u = &domain.User{
		UserID:      id.NewAt(now),
		FullName:    name,
		PhoneNumber: phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return nil, domain.Dependency("create user", err)
		}
		// A concurrent signup claimed the phone first.
		existing, getErr := s.userRepo.GetByPhone(ctx, phone)
		if getErr != nil {
			return nil, domain.Dependency("lookup user", getErr)
		}
		return existing, nil
	}
	slog.InfoContext(ctx, "user created from otp verification", "user_id", u.UserID)
	return u, nil
}
