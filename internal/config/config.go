// Package config defines the application configuration and includes
// functions for loading and parsing it.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/leaseledger/leaseledger/pkg/constants"
)

// Configuration holds all configuration for leaseledger.
type Configuration struct {
	StorePath string        `yaml:"storePath,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Report    ReportConfig  `yaml:"report,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ReportConfig holds defaults for report generation.
type ReportConfig struct {
	PaymentTiming              string  `yaml:"paymentTiming,omitempty"`              // Beginning, End
	AllocationToLeaseComponent float64 `yaml:"allocationToLeaseComponent,omitempty"` // [0, 1]
	IncludedLeases             string  `yaml:"includedLeases,omitempty"`             // All, Property, Motor
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (conf *Configuration) ApplyDefaults() {
	if conf.StorePath == "" {
		conf.StorePath = constants.DefaultStoreFile
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Report.PaymentTiming == "" {
		conf.Report.PaymentTiming = "Beginning"
	}
	if conf.Report.AllocationToLeaseComponent == 0 {
		conf.Report.AllocationToLeaseComponent = 1.0
	}
	if conf.Report.IncludedLeases == "" {
		conf.Report.IncludedLeases = "All"
	}
}

// Default returns the configuration used when no config file is supplied.
func Default() *Configuration {
	conf := &Configuration{}
	conf.ApplyDefaults()
	return conf
}
