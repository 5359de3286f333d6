package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName        string
	HTTPPort           string
	PostgresDSN        string
	TokenSigningSecret string

	MasterAccessCode  string
	MasterDisplayName string
	Units             []UnitAccess
}

// UnitAccess is one configured unit entry. DisplayName falls back to
// "Unit <n>" when the name variable is unset.
type UnitAccess struct {
	Code        string
	DisplayName string
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "caixa"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	masterName := strings.TrimSpace(os.Getenv("ACCESS_NAME_MASTER"))
	if masterName == "" {
		masterName = "Master Overview"
	}

	// Unit entries are numbered from 1; reading stops at the first unset
	// code so the unit count is configurable without a separate knob.
	var units []UnitAccess
	for i := 1; ; i++ {
		code := strings.TrimSpace(os.Getenv(fmt.Sprintf("ACCESS_CODE_UNIT_%d", i)))
		if code == "" {
			break
		}
		name := strings.TrimSpace(os.Getenv(fmt.Sprintf("ACCESS_NAME_UNIT_%d", i)))
		if name == "" {
			name = fmt.Sprintf("Unit %d", i)
		}
		units = append(units, UnitAccess{Code: code, DisplayName: name})
	}

	return Config{
		ServiceName:        service,
		HTTPPort:           port,
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		TokenSigningSecret: os.Getenv("TOKEN_SIGNING_SECRET"),

		MasterAccessCode:  strings.TrimSpace(os.Getenv("ACCESS_CODE_MASTER")),
		MasterDisplayName: masterName,
		Units:             units,
	}, nil
}
