package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults shared by the handlers.
const (
	DefaultTagKey           = "Name"
	DefaultMinItemCost      = 0.01
	DefaultCostSections     = "tags"
	DefaultCompliancePrefix = "compliance-reports/"
	DefaultBackupRegions    = "us-east-1,us-east-2,us-west-1,us-west-2"
	DefaultLookbackDays     = 14
	DefaultReportDays       = 1
	MaxReportDays           = 7
	DefaultVaultSortOrder   = "hourly,daily,weekly,monthly,yearly"
	DefaultDiagramRegion    = "us-east-1"
	DefaultDiagramKey       = "network_diagram.png"
	DefaultDiagramFormat    = "png"
	DefaultDiagramInclude   = "elb,waf,lambda,rds"
	DefaultDotBinary        = "dot"
	DefaultRenderTimeout    = 60 * time.Second
)

// VaultKinds lists the vault kinds in their default report order.
var VaultKinds = []string{"hourly", "daily", "weekly", "monthly", "yearly"}

// newEnv carrega o .env (quando existir) e devolve um viper lendo do ambiente.
func newEnv() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

// LoadCostReportConfig lê a configuração do cost reporter.
func LoadCostReportConfig() types.CostReportConfig {
	v := newEnv()
	v.SetDefault("REPORT_TAG_KEY", DefaultTagKey)
	v.SetDefault("REPORT_SECTIONS", DefaultCostSections)

	tagKey := strings.TrimSpace(v.GetString("REPORT_TAG_KEY"))
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	return types.CostReportConfig{
		Bucket:             v.GetString("REPORT_BUCKET"),
		TagKey:             tagKey,
		PeriodStart:        strings.TrimSpace(v.GetString("REPORT_TIME_PERIOD_START")),
		PeriodEnd:          strings.TrimSpace(v.GetString("REPORT_TIME_PERIOD_END")),
		CustomerIdentifier: v.GetString("CUSTOMER_IDENTIFIER"),
		MinItemCost:        envFloat(v, "MIN_ITEM_COST", DefaultMinItemCost),
		Sections:           splitList(v.GetString("REPORT_SECTIONS")),
		SNSTopicARN:        v.GetString("REPORT_SNS_TOPIC_ARN"),
	}
}

// LoadComplianceReportConfig lê a configuração do compliance reporter.
func LoadComplianceReportConfig() types.ComplianceReportConfig {
	v := newEnv()
	v.SetDefault("REPORT_S3_PREFIX", DefaultCompliancePrefix)

	return types.ComplianceReportConfig{
		Bucket:      v.GetString("S3_BUCKET_NAME"),
		Prefix:      v.GetString("REPORT_S3_PREFIX"),
		SNSTopicARN: v.GetString("REPORT_SNS_TOPIC_ARN"),
	}
}

// LoadSnapshotConfig lê a configuração do processador de snapshots do Config.
func LoadSnapshotConfig() types.SnapshotConfig {
	v := newEnv()
	v.SetDefault("GENERATE_SUMMARY", "true")

	return types.SnapshotConfig{
		GenerateSummary: envBool(v, "GENERATE_SUMMARY"),
	}
}

// LoadBackupReportConfig lê a configuração do inventário de backup.
func LoadBackupReportConfig() types.BackupReportConfig {
	v := newEnv()
	v.SetDefault("BACKUP_REGIONS", DefaultBackupRegions)

	regions := splitList(v.GetString("BACKUP_REGIONS"))
	if len(regions) == 0 {
		regions = splitList(DefaultBackupRegions)
	}

	days := envInt(v, "JOB_LOOKBACK_DAYS", DefaultLookbackDays)
	if days < 1 {
		days = DefaultLookbackDays
	}

	return types.BackupReportConfig{
		Bucket:             v.GetString("REPORT_BUCKET"),
		CustomerIdentifier: v.GetString("CUSTOMER_IDENTIFIER"),
		Regions:            regions,
		LookbackDays:       days,
		SNSTopicARN:        v.GetString("REPORT_SNS_TOPIC_ARN"),
	}
}

// LoadBackupStatusConfig lê a configuração do relatório de status de backup.
func LoadBackupStatusConfig() types.BackupStatusConfig {
	v := newEnv()
	v.SetDefault("VAULT_SORT_ORDER", DefaultVaultSortOrder)

	days := envInt(v, "REPORT_DAYS", DefaultReportDays)
	if days < 1 || days > MaxReportDays {
		days = DefaultReportDays
	}

	prefix := v.GetString("VAULT_NAME_PREFIX")
	vaults := make([]types.VaultSelection, 0, len(VaultKinds))
	for _, kind := range VaultKinds {
		upper := strings.ToUpper(kind)
		enableKey := "ENABLE_" + upper + "_REPORT"
		nameKey := upper + "_VAULT_NAME"
		v.SetDefault(enableKey, "true")
		v.SetDefault(nameKey, prefix+kind)

		name := v.GetString(nameKey)
		vaults = append(vaults, types.VaultSelection{
			Kind:    kind,
			Name:    name,
			Enabled: envBool(v, enableKey) && name != "",
		})
	}

	return types.BackupStatusConfig{
		Bucket:             v.GetString("REPORT_BUCKET"),
		CustomerIdentifier: v.GetString("CUSTOMER_IDENTIFIER"),
		ReportDays:         days,
		Vaults:             vaults,
		SortOrder:          splitList(v.GetString("VAULT_SORT_ORDER")),
		VaultNamePrefix:    prefix,
		SNSTopicARN:        v.GetString("REPORT_SNS_TOPIC_ARN"),
	}
}

// LoadNetworkDiagramConfig lê a configuração do gerador de diagrama.
func LoadNetworkDiagramConfig() types.NetworkDiagramConfig {
	v := newEnv()
	v.SetDefault("AWS_REGION", DefaultDiagramRegion)
	v.SetDefault("DIAGRAM_KEY", DefaultDiagramKey)
	v.SetDefault("DIAGRAM_FORMAT", DefaultDiagramFormat)
	v.SetDefault("DIAGRAM_INCLUDE", DefaultDiagramInclude)
	v.SetDefault("GRAPHVIZ_DOT", DefaultDotBinary)

	region := v.GetString("AWS_REGION")
	if region == "" {
		region = DefaultDiagramRegion
	}
	format := strings.ToLower(strings.TrimSpace(v.GetString("DIAGRAM_FORMAT")))
	if format == "" {
		format = DefaultDiagramFormat
	}

	return types.NetworkDiagramConfig{
		Bucket:     v.GetString("S3_BUCKET"),
		Region:     region,
		Key:        v.GetString("DIAGRAM_KEY"),
		Format:     format,
		Include:    splitList(strings.ToLower(v.GetString("DIAGRAM_INCLUDE"))),
		DotBinary:  v.GetString("GRAPHVIZ_DOT"),
		RenderTime: envDuration(v, "DIAGRAM_RENDER_TIMEOUT", DefaultRenderTimeout),
	}
}

// envBool segue a regra "verdadeiro somente se o valor em minúsculas for true".
func envBool(v *viper.Viper, key string) bool {
	return strings.EqualFold(strings.TrimSpace(v.GetString(key)), "true")
}

func envInt(v *viper.Viper, key string, def int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// envDuration aceita duração Go ("2m") ou segundos inteiros ("30").
func envDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envFloat(v *viper.Viper, key string, def float64) float64 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

// splitList quebra uma lista separada por vírgulas, descartando itens vazios.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
