package config

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

var (
	fbAuth   *auth.Client
	fbAuthMu sync.Mutex
)

func init() {
	// Load env from .env
	godotenv.Load()
}

func GetFirebaseAuth() *auth.Client {
	fbAuthMu.Lock()
	defer fbAuthMu.Unlock()
	return fbAuth
}

// ConnectFirebaseWithRetry initializes the Firebase Admin auth client.
// Call this from main() AFTER the HTTP server is listening.
func ConnectFirebaseWithRetry() {
	ctx := context.Background()

	var opts []option.ClientOption
	if credJSON := strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_JSON")); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	conf := &firebase.Config{}
	if projectID := strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")); projectID != "" {
		conf.ProjectID = projectID
	}

	var attempt int
	for {
		attempt++
		app, err := firebase.NewApp(ctx, conf, opts...)
		if err == nil {
			var client *auth.Client
			client, err = app.Auth(ctx)
			if err == nil {
				fbAuthMu.Lock()
				fbAuth = client
				fbAuthMu.Unlock()
				log.Printf("firebase auth client ready (attempt=%d)", attempt)
				return
			}
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to init firebase auth (attempt=%d): %v; retrying in %s", attempt, err, sleep)
		time.Sleep(sleep)
	}
}

// VerifyIDToken verifies a Firebase ID token and returns the decoded token.
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	client := GetFirebaseAuth()
	if client == nil {
		return nil, errors.New("firebase auth not ready")
	}
	return client.VerifyIDToken(ctx, idToken)
}

func GetFirebaseUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	client := GetFirebaseAuth()
	if client == nil {
		return nil, errors.New("firebase auth not ready")
	}
	return client.GetUser(ctx, uid)
}

func CreateFirebaseUser(ctx context.Context, email, password, displayName string) (*auth.UserRecord, error) {
	client := GetFirebaseAuth()
	if client == nil {
		return nil, errors.New("firebase auth not ready")
	}
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(false).
		Disabled(false)
	return client.CreateUser(ctx, params)
}

func DeleteFirebaseUser(ctx context.Context, uid string) error {
	client := GetFirebaseAuth()
	if client == nil {
		return errors.New("firebase auth not ready")
	}
	return client.DeleteUser(ctx, uid)
}

// SetFirebaseClaims replaces the custom claims of a user (role, country,
// region, businessType, verified).
func SetFirebaseClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	client := GetFirebaseAuth()
	if client == nil {
		return errors.New("firebase auth not ready")
	}
	return client.SetCustomUserClaims(ctx, uid, claims)
}

// MintCustomToken creates a custom token the client exchanges for a fresh
// ID token via the Firebase client SDK.
func MintCustomToken(ctx context.Context, uid string) (string, error) {
	client := GetFirebaseAuth()
	if client == nil {
		return "", errors.New("firebase auth not ready")
	}
	return client.CustomToken(ctx, uid)
}

// RevokeFirebaseTokens invalidates every refresh token of the user.
func RevokeFirebaseTokens(ctx context.Context, uid string) error {
	client := GetFirebaseAuth()
	if client == nil {
		return errors.New("firebase auth not ready")
	}
	return client.RevokeRefreshTokens(ctx, uid)
}

// IsFirebaseEmailExists maps the Admin SDK error for duplicate emails.
func IsFirebaseEmailExists(err error) bool {
	return err != nil && auth.IsEmailAlreadyExists(err)
}

func IsFirebaseWeakPassword(err error) bool {
	// The Admin SDK surfaces weak passwords as invalid argument errors
	// mentioning the password constraint.
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "password")
}
