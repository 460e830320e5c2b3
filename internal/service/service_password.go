package service

import (
	"github.com/MKhiriev/fmp-vault/internal/password"
	"github.com/MKhiriev/fmp-vault/models"
)

type passwordService struct {
	meter    *password.Meter
	defaults models.GeneratorOptions
}

// NewPasswordService returns the estimator/generator service. defaults
// are the configured generation options used by GenerateDefault.
func NewPasswordService(defaults models.GeneratorOptions) PasswordService {
	return &passwordService{
		meter:    password.NewMeter(),
		defaults: defaults,
	}
}

func (p *passwordService) Estimate(pw string) models.Strength {
	return p.meter.Estimate(pw)
}

func (p *passwordService) Generate(opts models.GeneratorOptions) (string, error) {
	return password.Generate(opts)
}

func (p *passwordService) GenerateDefault() (string, error) {
	return password.Generate(p.defaults)
}
