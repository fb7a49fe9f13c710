package azure

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestNewClientSharedKey(t *testing.T) {
	a, err := NewAccount("MyAccount", "exports", AccessToken(testKey()))
	require.NoError(t, err)

	client, err := NewClient(log.NewNopLogger(), a, Config{})
	require.NoError(t, err)

	assert.Contains(t, client.URL(), "https://myaccount."+DefaultBlobStorageURL)
}

func TestNewClientSharedKeyInvalid(t *testing.T) {
	a, err := NewAccount("myaccount", "exports", AccessToken("not-base64!"))
	require.NoError(t, err)

	_, err = NewClient(log.NewNopLogger(), a, Config{})
	assert.Error(t, err)
}

func TestNewClientSAS(t *testing.T) {
	a, err := NewAccount("myaccount", "exports", SASToken("sv=2019-10-10&sig=abc"))
	require.NoError(t, err)

	client, err := NewClient(log.NewNopLogger(), a, Config{})
	require.NoError(t, err)

	url := client.URL()
	assert.Contains(t, url, "myaccount."+DefaultBlobStorageURL)
	assert.Contains(t, url, "sv=2019-10-10")
}

func TestNewClientSASLeadingQuestionMark(t *testing.T) {
	a, err := NewAccount("myaccount", "exports", SASToken("?sv=2019-10-10&sig=abc"))
	require.NoError(t, err)

	client, err := NewClient(log.NewNopLogger(), a, Config{})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(client.URL(), "?"))
}

func TestNewClientAzurite(t *testing.T) {
	a, err := NewAccount("devstoreaccount1", "exports", SASToken("sv=2019-10-10&sig=abc"))
	require.NoError(t, err)

	client, err := NewClient(log.NewNopLogger(), a, Config{BlobStorageURL: "127.0.0.1:10000", Azurite: true})
	require.NoError(t, err)

	assert.Contains(t, client.URL(), "http://127.0.0.1:10000/devstoreaccount1")
}

func TestNewClientRejectsInvalidAccount(t *testing.T) {
	a := Account{AccountID: "acc", AuthMethod: AuthMethodSAS, AccessToken: "tok", SASToken: "sv=x"}

	_, err := NewClient(log.NewNopLogger(), a, Config{})
	assert.Error(t, err)
}
