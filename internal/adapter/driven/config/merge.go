package config

import "github.com/diillson/aws-report-lambdas/internal/shared/types"

// Overrides são os valores vindos do arquivo de configuração e das flags da CLI.
// Campos vazios não alteram a configuração carregada do ambiente.
type Overrides struct {
	File   *types.Config
	Bucket string
	Region string
}

func (o Overrides) file() types.Config {
	if o.File == nil {
		return types.Config{}
	}
	return *o.File
}

func (o Overrides) bucket() string {
	if o.Bucket != "" {
		return o.Bucket
	}
	return o.file().Bucket
}

// RegionOr devolve a região das flags, a do arquivo ou def.
func (o Overrides) RegionOr(def string) string {
	if o.Region != "" {
		return o.Region
	}
	return firstNonEmpty(o.file().Region, def)
}

// ApplyCost aplica os overrides na configuração do relatório de custos.
func (o Overrides) ApplyCost(c *types.CostReportConfig) {
	f := o.file()
	c.Bucket = firstNonEmpty(o.bucket(), c.Bucket)
	c.CustomerIdentifier = firstNonEmpty(f.CustomerIdentifier, c.CustomerIdentifier)
	c.TagKey = firstNonEmpty(f.TagKey, c.TagKey)
	c.PeriodStart = firstNonEmpty(f.PeriodStart, c.PeriodStart)
	c.PeriodEnd = firstNonEmpty(f.PeriodEnd, c.PeriodEnd)
	c.SNSTopicARN = firstNonEmpty(f.SNSTopicARN, c.SNSTopicARN)
	if f.MinItemCost > 0 {
		c.MinItemCost = f.MinItemCost
	}
	if len(f.Sections) > 0 {
		c.Sections = f.Sections
	}
}

// ApplyCompliance aplica os overrides na configuração do relatório de conformidade.
func (o Overrides) ApplyCompliance(c *types.ComplianceReportConfig) {
	f := o.file()
	c.Bucket = firstNonEmpty(o.bucket(), c.Bucket)
	c.Prefix = firstNonEmpty(f.ReportPrefix, c.Prefix)
	c.SNSTopicARN = firstNonEmpty(f.SNSTopicARN, c.SNSTopicARN)
}

// ApplyBackup aplica os overrides na configuração do inventário de backup.
func (o Overrides) ApplyBackup(c *types.BackupReportConfig) {
	f := o.file()
	c.Bucket = firstNonEmpty(o.bucket(), c.Bucket)
	c.CustomerIdentifier = firstNonEmpty(f.CustomerIdentifier, c.CustomerIdentifier)
	c.SNSTopicARN = firstNonEmpty(f.SNSTopicARN, c.SNSTopicARN)
	if len(f.BackupRegions) > 0 {
		c.Regions = f.BackupRegions
	}
}

// ApplyBackupStatus aplica os overrides na configuração do status de backup.
func (o Overrides) ApplyBackupStatus(c *types.BackupStatusConfig) {
	f := o.file()
	c.Bucket = firstNonEmpty(o.bucket(), c.Bucket)
	c.CustomerIdentifier = firstNonEmpty(f.CustomerIdentifier, c.CustomerIdentifier)
	c.SNSTopicARN = firstNonEmpty(f.SNSTopicARN, c.SNSTopicARN)
	if f.ReportDays >= 1 && f.ReportDays <= MaxReportDays {
		c.ReportDays = f.ReportDays
	}
	if f.VaultNamePrefix != "" && f.VaultNamePrefix != c.VaultNamePrefix {
		// Vaults ainda com o nome padrão acompanham o novo prefixo.
		for i, v := range c.Vaults {
			if v.Name == c.VaultNamePrefix+v.Kind {
				c.Vaults[i].Name = f.VaultNamePrefix + v.Kind
			}
		}
		c.VaultNamePrefix = f.VaultNamePrefix
	}
}

// ApplyNetworkDiagram aplica os overrides na configuração do diagrama.
func (o Overrides) ApplyNetworkDiagram(c *types.NetworkDiagramConfig) {
	f := o.file()
	c.Bucket = firstNonEmpty(o.bucket(), c.Bucket)
	c.Region = o.RegionOr(c.Region)
	c.Format = firstNonEmpty(f.DiagramFormat, c.Format)
	if len(f.DiagramInclude) > 0 {
		c.Include = f.DiagramInclude
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
