package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// DefaultBlobStorageURL is the public Azure Blob Storage endpoint suffix.
const DefaultBlobStorageURL = "blob.core.windows.net"

// Config is a structure to store Azure service endpoint configuration.
type Config struct {
	BlobStorageURL string // endpoint suffix, or host when Azurite is set
	Azurite        bool   // local emulator addressing scheme
}

// NewClient builds an azblob client for a registered account. It only
// assembles the credential and service URL; no request is sent and the
// secret is not validated against the live service.
func NewClient(l log.Logger, a Account, c Config) (*azblob.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if c.BlobStorageURL == "" {
		c.BlobStorageURL = DefaultBlobStorageURL
	}

	var serviceURL string
	if c.Azurite {
		serviceURL = fmt.Sprintf("http://%s/%s", c.BlobStorageURL, a.AccountID)
	} else {
		serviceURL = fmt.Sprintf("https://%s.%s", a.AccountID, c.BlobStorageURL)
	}

	switch a.AuthMethod {
	case AuthMethodSAS:
		level.Debug(l).Log("msg", "using SAS token authentication", "account", a.AccountID, "url", serviceURL)

		sas := strings.TrimPrefix(a.SASToken, "?")

		client, err := azblob.NewClientWithNoCredential(serviceURL+"?"+sas, nil)
		if err != nil {
			return nil, fmt.Errorf("azure, failed to create client with SAS token, %w", err)
		}

		return client, nil
	case AuthMethodAccessToken:
		level.Debug(l).Log("msg", "using shared key authentication", "account", a.AccountID, "url", serviceURL)

		cred, err := azblob.NewSharedKeyCredential(a.AccountID, a.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("azure, invalid shared key credentials, %w", err)
		}

		client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("azure, failed to create client with shared key, %w", err)
		}

		return client, nil
	}

	return nil, fmt.Errorf("azure, unsupported auth method %q", a.AuthMethod)
}
