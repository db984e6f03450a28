package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/plantngo/backend/internal/apierr"
	"github.com/plantngo/backend/internal/repos"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewAuthService(
		db,
		log,
		repos.NewCustomerRepo(db, log),
		repos.NewMerchantRepo(db, log),
		"test-secret",
		time.Hour,
	)
	return svc, db
}

func TestRegisterCustomerStartsWithZeroPoints(t *testing.T) {
	svc, _ := newAuthService(t)

	customer, err := svc.RegisterCustomer(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("RegisterCustomer: %v", err)
	}
	if customer.GreenPoints != 0 {
		t.Fatalf("green points=%d, want 0", customer.GreenPoints)
	}
	if customer.Password == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterCustomerDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterCustomer(ctx, "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.RegisterCustomer(ctx, "alice", "other@example.com", "hunter2hunter2")
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("duplicate username err=%v, want AlreadyExists", err)
	}
	_, err = svc.RegisterCustomer(ctx, "bob", "alice@example.com", "hunter2hunter2")
	if !apierr.IsAlreadyExists(err) {
		t.Fatalf("duplicate email err=%v, want AlreadyExists", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterCustomer(ctx, "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "alice", "hunter2hunter2", UserTypeCustomer)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	username, userType, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if username != "alice" || userType != UserTypeCustomer {
		t.Fatalf("claims=(%q,%q), want (alice,customer)", username, userType)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterCustomer(ctx, "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "wrong", UserTypeCustomer); err == nil {
		t.Fatal("login with wrong password succeeded")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever", UserTypeCustomer)
	if !apierr.IsUserNotFound(err) {
		t.Fatalf("err=%v, want UserNotFound", err)
	}
}
