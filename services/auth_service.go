package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"canteen/models"
	"canteen/repositories"
	"canteen/utils"
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	userRepo *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepository(),
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	existingUser, _ := s.userRepo.FindByEmail(req.Email)
	if existingUser != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     "customer",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// ForgotPassword issues a short-lived OTP for the account, if it exists.
// Callers always get a nil error for unknown emails so the endpoint does not
// leak which addresses are registered.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil
	}

	if models.RedisClient == nil {
		log.Println("Forgot password requested but Redis is unavailable")
		return nil
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	err = models.RedisClient.Set(context.Background(), otpKey(user.Email), otp, otpTTL).Err()
	if err != nil {
		return err
	}

	emailSvc, err := models.NewEmailService()
	if err != nil {
		log.Println("Email service unavailable:", err)
		return nil
	}
	if err := emailSvc.SendOTPEmail(user.Email, otp); err != nil {
		log.Println("Failed to send OTP email:", err)
	}
	return nil
}

// ResetPassword completes the OTP flow. The OTP is single use: it is deleted
// as soon as it matches.
func (s *AuthService) ResetPassword(req models.ResetPasswordRequest) error {
	if models.RedisClient == nil {
		return errors.New("password reset is currently unavailable")
	}

	stored, err := models.RedisClient.Get(context.Background(), otpKey(req.Email)).Result()
	if err != nil || stored != req.OTP {
		return errors.New("invalid or expired OTP")
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return errors.New("invalid or expired OTP")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword); err != nil {
		return err
	}

	models.RedisClient.Del(context.Background(), otpKey(req.Email))
	return nil
}

func otpKey(email string) string {
	return "otp:reset:" + email
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
