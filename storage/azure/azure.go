// Package azure holds registered Azure Blob Storage account configurations
// and builds SDK clients from them.
package azure

import (
	"errors"
	"fmt"
	"strings"
)

// AuthMethod identifies which credential an account registration carries.
type AuthMethod string

const (
	// AuthMethodAccessToken authenticates with the storage account access key.
	AuthMethodAccessToken AuthMethod = "AccessToken"
	// AuthMethodSAS authenticates with a shared access signature.
	AuthMethodSAS AuthMethod = "SAS"
)

// Credential is the single secret supplied at registration time, either an
// account access token or a SAS token. The two are mutually exclusive.
type Credential interface {
	Method() AuthMethod
	secret() string
}

// AccessToken is a storage account access key.
type AccessToken string

// Method implements Credential.
func (AccessToken) Method() AuthMethod { return AuthMethodAccessToken }

func (t AccessToken) secret() string { return string(t) }

// SASToken is a shared access signature scoped to the target resource.
type SASToken string

// Method implements Credential.
func (SASToken) Method() AuthMethod { return AuthMethodSAS }

func (t SASToken) secret() string { return string(t) }

// Account is one registered storage account configuration. AccountID and
// BlobName are held lower-cased; exactly one secret field is populated,
// matching AuthMethod.
type Account struct {
	AccountID   string     `mapstructure:"accountid"`
	BlobName    string     `mapstructure:"blobname"`
	AuthMethod  AuthMethod `mapstructure:"authmethod"`
	AccessToken string     `mapstructure:"accesstoken"`
	SASToken    string     `mapstructure:"sastoken"`
}

// NewAccount builds a normalized Account. AccountID and BlobName are
// lower-cased for case-insensitive matching downstream; the secret is stored
// as given.
func NewAccount(accountID, blobName string, cred Credential) (Account, error) {
	if cred == nil || cred.secret() == "" {
		return Account{}, errors.New("azure, exactly one non-empty credential is required")
	}

	a := Account{
		AccountID:  strings.ToLower(accountID),
		BlobName:   strings.ToLower(blobName),
		AuthMethod: cred.Method(),
	}

	switch cred.Method() {
	case AuthMethodAccessToken:
		a.AccessToken = cred.secret()
	case AuthMethodSAS:
		a.SASToken = cred.secret()
	default:
		return Account{}, fmt.Errorf("azure, unsupported auth method %q", cred.Method())
	}

	return a, nil
}

// Validate checks the auth method and secret invariant: the method matches
// the one populated secret field, never both and never neither.
func (a Account) Validate() error {
	switch a.AuthMethod {
	case AuthMethodAccessToken:
		if a.AccessToken == "" || a.SASToken != "" {
			return fmt.Errorf("azure, account %q must carry exactly an access token", a.AccountID)
		}
	case AuthMethodSAS:
		if a.SASToken == "" || a.AccessToken != "" {
			return fmt.Errorf("azure, account %q must carry exactly a SAS token", a.AccountID)
		}
	default:
		return fmt.Errorf("azure, account %q has unsupported auth method %q", a.AccountID, a.AuthMethod)
	}

	return nil
}
