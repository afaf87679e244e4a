package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"shipvoid-backend/internal/timeutil"
)

// DefaultDC is used when no distribution center is configured
const DefaultDC = "6006"

// DCConfig describes where one distribution center drops its forecast
type DCConfig struct {
	Name               string `mapstructure:"name" json:"name"`
	BasePath           string `mapstructure:"base_path" json:"base_path"`
	UsesMonthlyFolders bool   `mapstructure:"uses_monthly_folders" json:"uses_monthly_folders"`
}

// DCInfo is the public listing entry for a DC
type DCInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DefaultDCs returns the built-in distribution centers
func DefaultDCs() map[string]DCConfig {
	return map[string]DCConfig{
		"6006": {
			Name:     "DC 6006",
			BasePath: `\\us06006w8000d2a.s06006.us.wal-mart.com\Rdrive\Ship_Void_Forecast`,
		},
		"6040": {
			Name:     "DC 6040",
			BasePath: `\\us06040w8000d2a.s06040.us.wal-mart.com\Rdrive`,
		},
		"6031": {
			Name:               "DC 6031",
			BasePath:           `\\s06031nts800us.s06031.us\Rdrive\Shipvoid Forecast`,
			UsesMonthlyFolders: true,
		},
	}
}

// DCPath resolves the forecast folder of a DC. DCs with monthly folders
// file by <base>/<YYYY>/<MON YYYY> for the month containing at.
func (c *Config) DCPath(code string, at time.Time) (string, error) {
	dc, ok := c.DCs[code]
	if !ok {
		return "", c.unknownDC(code)
	}
	if !dc.UsesMonthlyFolders {
		return dc.BasePath, nil
	}
	year, month := timeutil.MonthFolder(at)
	return filepath.Join(dc.BasePath, year, month), nil
}

// AvailableDCs lists the configured DCs ordered by code
func (c *Config) AvailableDCs() []DCInfo {
	out := make([]DCInfo, 0, len(c.DCs))
	for code, dc := range c.DCs {
		out = append(out, DCInfo{Code: code, Name: dc.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *Config) unknownDC(code string) error {
	codes := make([]string, 0, len(c.DCs))
	for _, dc := range c.AvailableDCs() {
		codes = append(codes, dc.Code)
	}
	return fmt.Errorf("unknown DC: %s. Available: %s", code, strings.Join(codes, ", "))
}
