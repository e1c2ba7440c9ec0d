package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailSourceSettings(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("inbox", EndpointTypeEmailSource, map[string]string{
			"host":     "imap.example.com",
			"username": "u",
			"password": "p",
		})

		settings, err := endpoint.EmailSourceSettings()
		assert.NoError(t, err)
		assert.Equal(t, "imap.example.com", settings.Host)
		assert.Equal(t, 993, settings.Port)
		assert.True(t, settings.UseSSL)
		assert.Equal(t, "INBOX", settings.Folder)
	})

	t.Run("explicit values win", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("inbox", EndpointTypeEmailSource, map[string]string{
			"host":   "mail.local",
			"port":   "143",
			"ssl":    "false",
			"folder": "Invoices",
		})

		settings, err := endpoint.EmailSourceSettings()
		assert.NoError(t, err)
		assert.Equal(t, 143, settings.Port)
		assert.False(t, settings.UseSSL)
		assert.Equal(t, "Invoices", settings.Folder)
	})

	t.Run("missing host rejected", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("inbox", EndpointTypeEmailSource, map[string]string{})
		_, err := endpoint.EmailSourceSettings()
		assert.Error(t, err)
	})

	t.Run("bad port rejected", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("inbox", EndpointTypeEmailSource, map[string]string{
			"host": "h", "port": "not-a-number",
		})
		_, err := endpoint.EmailSourceSettings()
		assert.Error(t, err)
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("store", EndpointTypeStorage, map[string]string{})
		_, err := endpoint.EmailSourceSettings()
		assert.Error(t, err)
	})
}

func TestStorageSettings(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("store", EndpointTypeStorage, map[string]string{
			"endpoint":  "minio.local:9000",
			"bucket":    "documents",
			"accessKey": "ak",
			"secretKey": "sk",
			"ssl":       "false",
		})

		settings, err := endpoint.StorageSettings()
		assert.NoError(t, err)
		assert.Equal(t, "minio.local:9000", settings.Endpoint)
		assert.Equal(t, "documents", settings.Bucket)
		assert.False(t, settings.UseSSL)
	})

	t.Run("missing bucket rejected", func(t *testing.T) {
		endpoint := NewIntegrationEndpoint("store", EndpointTypeStorage, map[string]string{
			"endpoint": "minio.local:9000",
		})
		_, err := endpoint.StorageSettings()
		assert.Error(t, err)
	})
}

func TestSettingsMapIsCopied(t *testing.T) {
	source := map[string]string{"host": "a"}
	endpoint := NewIntegrationEndpoint("inbox", EndpointTypeEmailSource, source)

	source["host"] = "changed"
	assert.Equal(t, "a", endpoint.Settings["host"])
}
