package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/fmp-vault/internal/config"
	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fmp")
	cfg, err := config.GetConfigWithFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("data_dir", cfg.Paths.DataDir).
		Str("config_dir", cfg.Paths.ConfigDir).
		Str("gpg_mode", cfg.GPG.Mode).
		Msg("received configs")

	services := service.NewServices(cfg, nil, log)

	vaults, err := services.VaultService.ListVaults()
	if err != nil {
		log.Fatal().Err(err).Msg("error listing vaults")
	}

	fmt.Printf("Vault root: %s\n", filepath.Join(cfg.Paths.DataDir, "fmp", "vaults"))
	for _, name := range vaults {
		required := services.TOTPService.IsRequired(name)
		fmt.Printf("  %s (2FA required: %t)\n", name, required)
	}
	if len(vaults) == 0 {
		fmt.Println("  no vaults yet")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
