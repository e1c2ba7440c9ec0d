package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EndpointType string

const (
	EndpointTypeEmailSource EndpointType = "EMAIL_SOURCE"
	EndpointTypeStorage     EndpointType = "STORAGE"
)

// IntegrationEndpoint is a named configuration record for one external
// collaborator (mail source or object storage). Settings are persisted as a
// free-form map but consumed through the typed views below.
type IntegrationEndpoint struct {
	Id        uuid.UUID
	Name      string
	Type      EndpointType
	Settings  map[string]string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewIntegrationEndpoint(name string, endpointType EndpointType, settings map[string]string) *IntegrationEndpoint {
	s := make(map[string]string)
	for k, v := range settings {
		s[k] = v
	}
	return &IntegrationEndpoint{
		Id:       uuid.New(),
		Name:     name,
		Type:     endpointType,
		Settings: s,
	}
}

type EmailSourceSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
	Folder   string
}

func (e *IntegrationEndpoint) EmailSourceSettings() (*EmailSourceSettings, error) {
	if e.Type != EndpointTypeEmailSource {
		return nil, fmt.Errorf("endpoint %s is not an email source", e.Id)
	}

	port := 993
	if raw, ok := e.Settings["port"]; ok && raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", raw, err)
		}
		port = p
	}

	useSSL := true
	if raw, ok := e.Settings["ssl"]; ok && raw != "" {
		useSSL = raw == "true"
	}

	folder := e.Settings["folder"]
	if folder == "" {
		folder = "INBOX"
	}

	s := &EmailSourceSettings{
		Host:     e.Settings["host"],
		Port:     port,
		Username: e.Settings["username"],
		Password: e.Settings["password"],
		UseSSL:   useSSL,
		Folder:   folder,
	}
	if s.Host == "" {
		return nil, fmt.Errorf("email source %s: host is required", e.Id)
	}
	return s, nil
}

type StorageSettings struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func (e *IntegrationEndpoint) StorageSettings() (*StorageSettings, error) {
	if e.Type != EndpointTypeStorage {
		return nil, fmt.Errorf("endpoint %s is not a storage target", e.Id)
	}

	useSSL := true
	if raw, ok := e.Settings["ssl"]; ok && raw != "" {
		useSSL = raw == "true"
	}

	s := &StorageSettings{
		Endpoint:  e.Settings["endpoint"],
		Region:    e.Settings["region"],
		Bucket:    e.Settings["bucket"],
		AccessKey: e.Settings["accessKey"],
		SecretKey: e.Settings["secretKey"],
		UseSSL:    useSSL,
	}
	if s.Endpoint == "" || s.Bucket == "" {
		return nil, fmt.Errorf("storage endpoint %s: endpoint and bucket are required", e.Id)
	}
	return s, nil
}
