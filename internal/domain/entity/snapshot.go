package entity

// ConfigSnapshot is the subset of an AWS Config snapshot file the processor reads.
type ConfigSnapshot struct {
	FileVersion        string                   `json:"fileVersion,omitempty"`
	ConfigSnapshotID   string                   `json:"configSnapshotId,omitempty"`
	ConfigurationItems []map[string]interface{} `json:"configurationItems"`
}

// SnapshotResource is the per-resource line of a snapshot summary.
type SnapshotResource struct {
	ResourceID         string `json:"resourceId"`
	ResourceName       string `json:"resourceName"`
	ARN                string `json:"ARN"`
	AWSRegion          string `json:"awsRegion"`
	AvailabilityZone   string `json:"availabilityZone"`
	ConfigurationState string `json:"configurationState"`
}

// SnapshotSummary counts snapshot resources by type and lists them.
type SnapshotSummary struct {
	TotalResources     int                           `json:"totalResources"`
	ResourceTypeCounts map[string]int                `json:"resourceTypeCounts"`
	ResourceDetails    map[string][]SnapshotResource `json:"resourceDetails"`
}
