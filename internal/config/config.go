// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/worawit/housing-loan-planner/pkg/constants"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for housing-loan-planner.
type Configuration struct {
	// StartDate is the calendar label of period 0 for every scenario. Empty
	// defaults to the current month.
	StartDate string        `yaml:"startDate,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
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
	// ShowSchedule includes the full period-by-period table in pretty output.
	ShowSchedule bool `yaml:"showSchedule,omitempty"`
}

// Scenario describes one loan scenario to simulate.
type Scenario struct {
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`

	// Principal is used directly when positive; otherwise it is derived as
	// HousePrice - DownPayment.
	Principal   float64 `yaml:"principal,omitempty"`
	HousePrice  float64 `yaml:"housePrice,omitempty"`
	DownPayment float64 `yaml:"downPayment,omitempty"`

	// Term length; TermMonths wins when both are set.
	TermYears  int `yaml:"termYears,omitempty"`
	TermMonths int `yaml:"termMonths,omitempty"`

	// InterestRate is a constant annual rate in percent (e.g. 4.0). A
	// non-empty RateSchedule takes precedence.
	InterestRate   float64    `yaml:"interestRate,omitempty"`
	RateSchedule   []RateBand `yaml:"rateSchedule,omitempty"`
	OnwardsRate    *float64   `yaml:"onwardsRate,omitempty"` // percent, for loan years beyond the table
	MonthlyPayment float64    `yaml:"monthlyPayment,omitempty"`
	// PaymentSchedule declares a manual variable payment by loan year.
	PaymentSchedule []PaymentBand `yaml:"paymentSchedule,omitempty"`
	OnwardsPayment  *float64      `yaml:"onwardsPayment,omitempty"`
	// CalculatePayment derives the payment from the standard mortgage formula,
	// re-amortizing whenever the rate changes.
	CalculatePayment bool `yaml:"calculatePayment,omitempty"`

	// YearlyAddOn is an extra principal payment applied every 12th period.
	YearlyAddOn   float64             `yaml:"yearlyAddOn,omitempty"`
	TopUps        []TopUpConfig       `yaml:"topUps,omitempty"`
	TopUpStrategy TopUpStrategyConfig `yaml:"topUpStrategy,omitempty"`

	AllowNegativeAmortization bool `yaml:"allowNegativeAmortization,omitempty"`
	MaxPeriods                int  `yaml:"maxPeriods,omitempty"`
}

// RateBand assigns an annual rate in percent to an inclusive range of loan
// years (1-based, matching how lenders quote stepped promotional rates).
type RateBand struct {
	StartYear int     `yaml:"startYear"`
	EndYear   int     `yaml:"endYear"`
	Rate      float64 `yaml:"rate"`
}

// PaymentBand assigns a monthly payment to an inclusive range of loan years.
type PaymentBand struct {
	StartYear int     `yaml:"startYear"`
	EndYear   int     `yaml:"endYear"`
	Payment   float64 `yaml:"payment"`
}

// TopUpConfig declares an extra principal payment by calendar month or period
// index.
type TopUpConfig struct {
	Month           string  `yaml:"month,omitempty"` // e.g. "2027-06"; takes precedence over Period
	Period          int     `yaml:"period,omitempty"`
	Amount          float64 `yaml:"amount"`
	Recurring       bool    `yaml:"recurring,omitempty"`
	FrequencyMonths int     `yaml:"frequencyMonths,omitempty"`
}

// TopUpStrategyConfig adjusts every payment relative to the scheduled amount.
// Strategy is one of none, additional, fixed (top up to at least Amount), or
// percentage.
type TopUpStrategyConfig struct {
	Strategy string  `yaml:"strategy"`
	Amount   float64 `yaml:"amount,omitempty"`
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

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.StartDate == "" {
		conf.StartDate = time.Now().Format(DateTimeLayout)
	}
}
