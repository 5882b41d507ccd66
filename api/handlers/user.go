package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// User exported for testing purposes
type User struct {
	Store     *store.Store
	Gateway   *gateway.Gateway
	JWTSecret string
}

// sessionTTL bounds how long a minted session token stays valid
const sessionTTL = 12 * time.Hour

func (u User) mintSessionToken(account models.UserAccount) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"name":     account.Name,
		"role":     string(account.Role),
		"zona":     account.Zone,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.JWTSecret))
}

// LoginHandler exchanges credentials for a session. The master backend is
// authoritative when configured; otherwise the local user collection is
// checked so field nodes keep working offline.
func (u User) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		config.ErrorStatus("failed to decode credentials", http.StatusBadRequest, w, err)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		config.ErrorStatus("login rejected", http.StatusBadRequest, w,
			&models.ValidationError{Field: "username", Reason: "username and password are required"})
		return
	}

	var account models.UserAccount
	if u.Gateway != nil && u.Gateway.Enabled() {
		var err error
		account, err = u.Gateway.Login(r.Context(), creds)
		if err != nil {
			var nerr *gateway.NetworkError
			if errors.As(err, &nerr) && nerr.Kind == gateway.ErrorStatus &&
				(nerr.StatusCode == http.StatusUnauthorized || nerr.StatusCode == http.StatusForbidden) {
				config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
				return
			}
			config.ErrorStatus("login upstream unavailable", http.StatusBadGateway, w, err)
			return
		}
	} else {
		var err error
		account, err = u.Store.VerifyUserSecret(creds.Username, creds.Password)
		if err != nil {
			config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
			return
		}
	}

	if !account.Active {
		config.ErrorStatus("account inactive", http.StatusForbidden, w, nil)
		return
	}

	signed, err := u.mintSessionToken(account)
	if err != nil {
		config.ErrorStatus("failed to sign session token", http.StatusInternalServerError, w, err)
		return
	}

	session := models.Session{
		UserID: account.ID,
		Name:   account.Name,
		Role:   account.Role,
		Zone:   account.Zone,
		Token:  signed,
	}
	u.Store.SetSession(session)
	zap.S().Infow("session opened", "user", account.Username, "role", account.Role)

	b, _ := json.Marshal(session)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RequireAdmin guards a route with the session JWT and an ADMIN role claim
func (u User) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		raw := r.Header.Get("Authorization")
		parts := strings.Split(raw, "Bearer ")
		if len(parts) < 2 {
			config.ErrorStatus("missing session token", http.StatusUnauthorized, w, nil)
			return
		}
		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(u.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			config.ErrorStatus("invalid session token", http.StatusUnauthorized, w, err)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != string(models.RoleAdmin) {
			config.ErrorStatus("admin role required", http.StatusForbidden, w, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UpsertUserHandler creates or updates one account. Unlike field captures
// this write is persistence-first: it fails loudly and changes nothing
// locally when the backend rejects it.
func (u User) UpsertUserHandler(w http.ResponseWriter, r *http.Request) {
	var account models.UserAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		config.ErrorStatus("failed to decode user", http.StatusBadRequest, w, err)
		return
	}

	if err := u.Store.UpsertUser(r.Context(), account); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			config.ErrorStatus("user rejected", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to save user", http.StatusBadGateway, w, err)
		return
	}

	b, _ := json.Marshal(map[string]string{"status": "saved"})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UsersHandler returns the user collection with secrets stripped
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users := u.Store.Users()
	out := make([]models.UserAccount, 0, len(users))
	for _, acc := range users {
		acc.Secret = ""
		out = append(out, acc)
	}
	b, err := json.Marshal(out)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
