package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveOrUnknown  = errors.New("invalid credentials or inactive account")
)

const AdminID = "ADMIN"

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// AdminIdentity is the non-persisted administrator session.
type AdminIdentity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type Service struct {
	config Config
	admin  AdminConfig
}

func NewService(config Config, admin AdminConfig) *Service {
	return &Service{
		config: config,
		admin:  admin,
	}
}

// AuthenticateAdmin checks the configured administrator credential pair.
// An unset password hash disables admin login.
func (s *Service) AuthenticateAdmin(username, password string) (AdminIdentity, error) {
	if s.admin.Username == "" || s.admin.PasswordHash == "" {
		return AdminIdentity{}, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := CheckPassword(password, s.admin.PasswordHash)
	if !userOK || !passOK {
		return AdminIdentity{}, ErrInvalidCredentials
	}

	return AdminIdentity{
		ID:    AdminID,
		Name:  "Administrator",
		Email: s.admin.Email,
		Role:  RoleAdmin,
	}, nil
}

// IssueToken signs a session token for an authenticated identity.
func (s *Service) IssueToken(userID, name, role string) (string, error) {
	return GenerateToken(s.config, userID, name, role)
}
