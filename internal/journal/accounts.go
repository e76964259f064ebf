// Package journal converts finalized invoices into double-entry journal
// rows and serializes them to the 13-column accounting CSV format.
package journal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Accounts holds the account titles used when synthesizing journal entries.
type Accounts struct {
	Receivable string `yaml:"receivable"` // 売掛金
	Sales      string `yaml:"sales"`      // 売上高
	TaxPayable string `yaml:"tax_payable"`
	Bank       string `yaml:"bank"`
	Department string `yaml:"department"` // applied to both legs when set
}

// DefaultAccounts returns the standard account titles for a Japanese small
// business ledger.
func DefaultAccounts() Accounts {
	return Accounts{
		Receivable: "売掛金",
		Sales:      "売上高",
		TaxPayable: "仮受消費税",
		Bank:       "普通預金",
	}
}

// accountsFile is the YAML shape of an account-title override file.
type accountsFile struct {
	Accounts Accounts `yaml:"accounts"`
}

// LoadAccounts reads account-title overrides from a YAML file, filling any
// title left empty with its default.
func LoadAccounts(path string) (Accounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Accounts{}, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var file accountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Accounts{}, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	accounts := file.Accounts
	defaults := DefaultAccounts()
	if accounts.Receivable == "" {
		accounts.Receivable = defaults.Receivable
	}
	if accounts.Sales == "" {
		accounts.Sales = defaults.Sales
	}
	if accounts.TaxPayable == "" {
		accounts.TaxPayable = defaults.TaxPayable
	}
	if accounts.Bank == "" {
		accounts.Bank = defaults.Bank
	}

	return accounts, nil
}
