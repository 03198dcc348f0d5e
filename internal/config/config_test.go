package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYaml = `---
startDate: 2026-01
logging:
  level: debug
  format: console
output:
  format: csv
  showSchedule: true
scenarios:
  - name: baseline
    active: true
    principal: 3000000
    termYears: 30
    interestRate: 4.0
    calculatePayment: true
  - name: stepped promo
    active: true
    housePrice: 3500000
    downPayment: 500000
    termMonths: 240
    rateSchedule:
      - startYear: 1
        endYear: 3
        rate: 2.5
      - startYear: 4
        endYear: 5
        rate: 4.0
    onwardsRate: 5.5
    monthlyPayment: 18000
    yearlyAddOn: 100000
    topUps:
      - month: 2027-06
        amount: 50000
      - period: 35
        amount: 20000
        recurring: true
        frequencyMonths: 6
    topUpStrategy:
      strategy: additional
      amount: 1000
  - name: shelved
    active: false
    principal: 1000000
    termYears: 10
    interestRate: 3.0
    monthlyPayment: 10000
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testConfigYaml))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.StartDate != "2026-01" {
		t.Errorf("StartDate = %s, expected 2026-01", conf.StartDate)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", conf.Logging)
	}
	if conf.Output.Format != "csv" || !conf.Output.ShowSchedule {
		t.Errorf("Output = %+v, expected csv with schedule", conf.Output)
	}
	if len(conf.Scenarios) != 3 {
		t.Fatalf("loaded %d scenarios, expected 3", len(conf.Scenarios))
	}

	baseline := conf.Scenarios[0]
	if baseline.Name != "baseline" || !baseline.Active {
		t.Errorf("scenario 0 = %+v, expected active baseline", baseline)
	}
	if baseline.Principal != 3000000 || baseline.TermYears != 30 || !baseline.CalculatePayment {
		t.Errorf("baseline fields = %+v, mismatch against config file", baseline)
	}

	stepped := conf.Scenarios[1]
	if stepped.HousePrice != 3500000 || stepped.DownPayment != 500000 {
		t.Errorf("stepped price fields = %+v, mismatch against config file", stepped)
	}
	if len(stepped.RateSchedule) != 2 {
		t.Fatalf("stepped has %d rate bands, expected 2", len(stepped.RateSchedule))
	}
	if stepped.RateSchedule[1].StartYear != 4 || stepped.RateSchedule[1].Rate != 4.0 {
		t.Errorf("rate band 1 = %+v, expected years 4-5 at 4.0", stepped.RateSchedule[1])
	}
	if stepped.OnwardsRate == nil || *stepped.OnwardsRate != 5.5 {
		t.Errorf("OnwardsRate = %v, expected 5.5", stepped.OnwardsRate)
	}
	if len(stepped.TopUps) != 2 || stepped.TopUps[0].Month != "2027-06" {
		t.Errorf("TopUps = %+v, mismatch against config file", stepped.TopUps)
	}
	if stepped.TopUps[1].FrequencyMonths != 6 || !stepped.TopUps[1].Recurring {
		t.Errorf("recurring top-up = %+v, expected 6 month frequency", stepped.TopUps[1])
	}
	if stepped.TopUpStrategy.Strategy != "additional" || stepped.TopUpStrategy.Amount != 1000 {
		t.Errorf("TopUpStrategy = %+v, expected additional 1000", stepped.TopUpStrategy)
	}

	if conf.Scenarios[2].Active {
		t.Error("scenario 2 is active, expected inactive")
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfiguration() with a missing file returned nil error")
	}
}

func TestLoadConfigurationDefaultStartDate(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, `---
scenarios:
  - name: minimal
    active: true
    principal: 100000
    termYears: 10
    interestRate: 3.0
    calculatePayment: true
`))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if expected := time.Now().Format(DateTimeLayout); conf.StartDate != expected {
		t.Errorf("StartDate = %s, expected current month %s", conf.StartDate, expected)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := &Configuration{
		StartDate: "2026-01",
		Scenarios: []Scenario{
			{
				Name:           "underwater",
				Active:         true,
				Principal:      1000000,
				TermYears:      30,
				InterestRate:   6.0,
				MonthlyPayment: 5000, // first month interest exactly 5000
			},
		},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Fatalf("ValidateConfiguration() returned %d warnings, expected 1: %v", len(warnings), warnings)
	}

	conf.Scenarios[0].Active = false
	warnings = conf.ValidateConfiguration()
	if len(warnings) != 1 || warnings[0] != "No active scenarios are configured" {
		t.Errorf("ValidateConfiguration() = %v, expected the no-active-scenarios warning", warnings)
	}
}
