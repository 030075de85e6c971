package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/banksim/internal/flagx"
	"github.com/dmitrijs2005/banksim/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	SessionValidityDuration     timex.Duration `json:"session_validity_duration"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PasswordHashIterations      int            `json:"password_hash_iterations"`
	OtacLength                  int            `json:"otac_length"`
	OtacStep                    timex.Duration `json:"otac_step"`
	OtacStepWindow              int            `json:"otac_step_window"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.PasswordHashIterations = c.PasswordHashIterations
	config.OtacLength = c.OtacLength
	config.OtacStep = time.Duration(c.OtacStep.Duration)
	config.OtacStepWindow = c.OtacStepWindow
}
