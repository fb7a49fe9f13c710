package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zechman/d365fo.tools/storage/azure"
)

func TestCredentialFromFlags(t *testing.T) {
	cred, err := credentialFromFlags("tok123", "")
	require.NoError(t, err)
	assert.Equal(t, azure.AccessToken("tok123"), cred)

	cred, err = credentialFromFlags("", "sv=2019&sig=x")
	require.NoError(t, err)
	assert.Equal(t, azure.SASToken("sv=2019&sig=x"), cred)

	_, err = credentialFromFlags("tok123", "sv=2019&sig=x")
	assert.Error(t, err)

	_, err = credentialFromFlags("", "")
	assert.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", maskSecret("tokn"))
	assert.Equal(t, "********k123", maskSecret("tok123tok123"))
	assert.Empty(t, maskSecret(""))
}
