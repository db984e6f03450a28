package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/types"
)

const (
	UserTypeCustomer = "customer"
	UserTypeMerchant = "merchant"
)

type AuthService interface {
	RegisterCustomer(ctx context.Context, username, email, password string) (*types.Customer, error)
	RegisterMerchant(ctx context.Context, username, email, password, company string) (*types.Merchant, error)
	Login(ctx context.Context, username, password, userType string) (string, error)
	ValidateToken(tokenString string) (username string, userType string, err error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	merchantRepo repos.MerchantRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	customerRepo repos.CustomerRepo,
	merchantRepo repos.MerchantRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		customerRepo: customerRepo,
		merchantRepo: merchantRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterCustomer(ctx context.Context, username, email, password string) (*types.Customer, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	taken, err := as.customerRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apierr.AlreadyExists("Username")
	}
	taken, err = as.customerRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apierr.AlreadyExists("Email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &types.Customer{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		GreenPoints: 0,
	}
	if _, err := as.customerRepo.Create(ctx, nil, []*types.Customer{customer}); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (as *authService) RegisterMerchant(ctx context.Context, username, email, password, company string) (*types.Merchant, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	taken, err := as.merchantRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apierr.AlreadyExists("Username")
	}
	taken, err = as.merchantRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apierr.AlreadyExists("Email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	merchant := &types.Merchant{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Company:  company,
	}
	if _, err := as.merchantRepo.Create(ctx, nil, []*types.Merchant{merchant}); err != nil {
		return nil, fmt.Errorf("create merchant: %w", err)
	}
	return merchant, nil
}

func (as *authService) Login(ctx context.Context, username, password, userType string) (string, error) {
	var storedHash string
	switch userType {
	case UserTypeCustomer:
		customer, err := as.customerRepo.GetByUsername(ctx, nil, username)
		if err != nil {
			return "", fmt.Errorf("load customer: %w", err)
		}
		if customer == nil {
			return "", apierr.UserNotFound()
		}
		storedHash = customer.Password
	case UserTypeMerchant:
		merchant, err := as.merchantRepo.GetByUsername(ctx, nil, username)
		if err != nil {
			return "", fmt.Errorf("load merchant: %w", err)
		}
		if merchant == nil {
			return "", apierr.UserNotFound()
		}
		storedHash = merchant.Password
	default:
		return "", fmt.Errorf("unknown user type %q", userType)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"typ": userType,
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	username, _ := claims["sub"].(string)
	userType, _ := claims["typ"].(string)
	if username == "" || userType == "" {
		return "", "", fmt.Errorf("token missing subject")
	}
	return username, userType, nil
}
