package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type structuredJSONConfig struct {
	Paths struct {
		DataDir   string `json:"data_dir"`
		ConfigDir string `json:"config_dir"`
	} `json:"paths,omitempty"`

	GPG struct {
		Mode         string   `json:"mode"`
		Binary       string   `json:"binary"`
		ExtraArgs    []string `json:"extra_args"`
		KeyringPaths []string `json:"keyring_paths"`
	} `json:"gpg,omitempty"`

	TOTP struct {
		Issuer string   `json:"issuer"`
		Digits int      `json:"digits"`
		Period Duration `json:"period"`
		Skew   int      `json:"skew"`
	} `json:"totp,omitempty"`

	Generator struct {
		Length  int    `json:"length"`
		Include string `json:"include"`
		Exclude string `json:"exclude"`
	} `json:"generator,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Paths: Paths{
			DataDir:   jsonCfg.Paths.DataDir,
			ConfigDir: jsonCfg.Paths.ConfigDir,
		},
		GPG: GPG{
			Mode:         jsonCfg.GPG.Mode,
			Binary:       jsonCfg.GPG.Binary,
			ExtraArgs:    jsonCfg.GPG.ExtraArgs,
			KeyringPaths: jsonCfg.GPG.KeyringPaths,
		},
		TOTP: TOTP{
			Issuer: jsonCfg.TOTP.Issuer,
			Digits: jsonCfg.TOTP.Digits,
			Period: time.Duration(jsonCfg.TOTP.Period),
			Skew:   jsonCfg.TOTP.Skew,
		},
		Generator: Generator{
			Length:  jsonCfg.Generator.Length,
			Include: jsonCfg.Generator.Include,
			Exclude: jsonCfg.Generator.Exclude,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
