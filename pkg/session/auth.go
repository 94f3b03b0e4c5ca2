package session

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// Authenticator checks the single administrator credential. Only a bcrypt
// hash of the password is kept in memory.
type Authenticator struct {
	user string
	hash []byte
}

// NewAuthenticator hashes password for user. Empty arguments fall back to the
// built-in administrator account.
func NewAuthenticator(user, password string) (*Authenticator, error) {
	if user == "" {
		user = constants.AdminUsername
	}
	if password == "" {
		password = constants.AdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewConfigError("session", "hashing administrator password", err)
	}
	return &Authenticator{user: user, hash: hash}, nil
}

// NewAuthenticatorFromHash uses an existing bcrypt hash, such as one from config.
func NewAuthenticatorFromHash(user string, hash []byte) (*Authenticator, error) {
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, errors.NewConfigError("session", "invalid administrator password hash", err)
	}
	if user == "" {
		user = constants.AdminUsername
	}
	return &Authenticator{user: user, hash: hash}, nil
}

// User returns the administrator user name.
func (a *Authenticator) User() string { return a.user }

// Authenticate returns an AuthenticationError unless user and password match.
// The message does not say which of the two was wrong.
func (a *Authenticator) Authenticate(user, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !userOK || passErr != nil {
		return errors.NewAuthenticationError(user, "invalid username or password", nil)
	}
	return nil
}
