package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, v interface{}) error

// decoders por extensão do arquivo de configuração.
var decoders = map[string]struct {
	name   string
	decode decodeFunc
}{
	".toml": {"TOML", toml.Unmarshal},
	".yaml": {"YAML", yaml.Unmarshal},
	".yml":  {"YAML", yaml.Unmarshal},
	".json": {"JSON", json.Unmarshal},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo TOML, YAML ou JSON. Referências ${VAR}
// são expandidas a partir do ambiente antes da decodificação.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	decoder, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var cfg types.Config
	if err := decoder.decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", decoder.name, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// validate normaliza listas e rejeita valores que nenhum relatório aceitaria.
func validate(cfg *types.Config) error {
	cfg.Sections = lowerAll(cfg.Sections)
	cfg.DiagramInclude = lowerAll(cfg.DiagramInclude)
	cfg.DiagramFormat = strings.ToLower(strings.TrimSpace(cfg.DiagramFormat))

	if cfg.DiagramFormat != "" && cfg.DiagramFormat != "png" && cfg.DiagramFormat != "svg" {
		return fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, cfg.DiagramFormat)
	}
	if cfg.ReportDays < 0 || cfg.ReportDays > MaxReportDays {
		return fmt.Errorf("report_days must be 0 (unset) to %d, got %d", MaxReportDays, cfg.ReportDays)
	}
	if cfg.MinItemCost < 0 {
		return fmt.Errorf("min_item_cost must not be negative, got %v", cfg.MinItemCost)
	}
	if (cfg.PeriodStart == "") != (cfg.PeriodEnd == "") {
		return fmt.Errorf("%w: period_start and period_end must be set together", types.ErrInvalidPeriod)
	}
	return nil
}

func lowerAll(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
