package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// ContentTypeJSON is the content type of the snapshot artifacts.
const ContentTypeJSON = "application/json"

// Suffixes of the derived snapshot artifacts.
const (
	FormattedSuffix = "_formatted.json"
	SummarySuffix   = "_summary.json"
)

// SnapshotObject identifies one snapshot file in the bucket.
type SnapshotObject struct {
	Bucket string
	Key    string
}

// IsProcessedKey reports whether key is already a derived artifact.
func IsProcessedKey(key string) bool {
	return strings.Contains(key, FormattedSuffix) || strings.Contains(key, SummarySuffix)
}

// DerivedKey troca a extensão .json (ou .json.json) pelo sufixo informado.
func DerivedKey(key, suffix string) (string, error) {
	base := strings.TrimSuffix(key, ".gz")

	derived := strings.ReplaceAll(base, ".json.json", suffix)
	if derived == base {
		derived = strings.ReplaceAll(base, ".json", suffix)
	}
	if derived == base || derived == key {
		return "", fmt.Errorf("%w: %s", types.ErrSameDerivedKey, key)
	}
	return derived, nil
}

// Decompress descompacta data quando começa com o magic number do gzip.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("error decompressing snapshot: %w", err)
	}
	return out, nil
}

// SummarizeSnapshot conta os itens por resourceType e lista os detalhes de cada um.
func SummarizeSnapshot(snapshot entity.ConfigSnapshot) entity.SnapshotSummary {
	summary := entity.SnapshotSummary{
		ResourceTypeCounts: make(map[string]int),
		ResourceDetails:    make(map[string][]entity.SnapshotResource),
	}

	for _, item := range snapshot.ConfigurationItems {
		resourceType, ok := item["resourceType"].(string)
		if !ok {
			continue
		}

		summary.ResourceTypeCounts[resourceType]++
		summary.ResourceDetails[resourceType] = append(summary.ResourceDetails[resourceType], entity.SnapshotResource{
			ResourceID:         itemField(item, "resourceId"),
			ResourceName:       itemField(item, "resourceName"),
			ARN:                itemField(item, "ARN"),
			AWSRegion:          itemField(item, "awsRegion"),
			AvailabilityZone:   itemField(item, "availabilityZone"),
			ConfigurationState: itemField(item, "configurationItemStatus"),
		})
		summary.TotalResources++
	}
	return summary
}

func itemField(item map[string]interface{}, field string) string {
	v, ok := item[field]
	if !ok || v == nil {
		return "N/A"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ConfigSnapshotUseCase formata snapshots do AWS Config e gera o resumo.
type ConfigSnapshotUseCase struct {
	store      repository.ObjectStore
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
}

// NewConfigSnapshotUseCase creates a new snapshot processing use case.
func NewConfigSnapshotUseCase(store repository.ObjectStore, exportRepo repository.ExportRepository, console types.ConsoleInterface) *ConfigSnapshotUseCase {
	return &ConfigSnapshotUseCase{store: store, exportRepo: exportRepo, console: console}
}

// Process trata todos os objetos da notificação em ordem; o primeiro erro interrompe.
func (uc *ConfigSnapshotUseCase) Process(ctx context.Context, cfg types.SnapshotConfig, objects []SnapshotObject) (types.HandlerResponse, error) {
	processed := 0
	for _, obj := range objects {
		if IsProcessedKey(obj.Key) {
			uc.console.LogInfo("Skipping already processed file: %s", obj.Key)
			continue
		}
		if err := uc.processObject(ctx, cfg, obj); err != nil {
			uc.console.LogError("Error processing Config snapshot: %s", err)
			return types.HandlerResponse{}, err
		}
		processed++
	}

	if processed == 0 {
		return types.HandlerResponse{StatusCode: 200, Body: "Skipped already processed file"}, nil
	}
	return types.HandlerResponse{StatusCode: 200, Body: "Successfully processed Config snapshot file"}, nil
}

func (uc *ConfigSnapshotUseCase) processObject(ctx context.Context, cfg types.SnapshotConfig, obj SnapshotObject) error {
	uc.console.LogInfo("Processing file s3://%s/%s", obj.Bucket, obj.Key)

	raw, err := uc.store.GetObject(ctx, obj.Bucket, obj.Key)
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", obj.Key, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: %s", types.ErrEmptySnapshotInput, obj.Key)
	}

	content, err := Decompress(raw)
	if err != nil {
		return err
	}
	uc.console.LogInfo("Snapshot %s is %s uncompressed", obj.Key, humanize.Bytes(uint64(len(content))))

	// json.Indent preserva a ordem original das chaves.
	var formatted bytes.Buffer
	if err := json.Indent(&formatted, content, "", "  "); err != nil {
		return fmt.Errorf("error parsing snapshot JSON: %w", err)
	}

	formattedKey, err := DerivedKey(obj.Key, FormattedSuffix)
	if err != nil {
		return err
	}
	if _, err := uc.store.PutObject(ctx, obj.Bucket, formattedKey, formatted.Bytes(), ContentTypeJSON); err != nil {
		return fmt.Errorf("error uploading formatted snapshot: %w", err)
	}
	uc.console.LogSuccess("Uploaded formatted file to s3://%s/%s", obj.Bucket, formattedKey)

	if !cfg.GenerateSummary {
		return nil
	}

	var snapshot entity.ConfigSnapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return fmt.Errorf("error decoding snapshot: %w", err)
	}

	summaryJSON, err := uc.exportRepo.ExportJSON(SummarizeSnapshot(snapshot))
	if err != nil {
		return err
	}

	summaryKey, err := DerivedKey(obj.Key, SummarySuffix)
	if err != nil {
		return err
	}
	if _, err := uc.store.PutObject(ctx, obj.Bucket, summaryKey, summaryJSON, ContentTypeJSON); err != nil {
		return fmt.Errorf("error uploading snapshot summary: %w", err)
	}
	uc.console.LogSuccess("Uploaded summary file to s3://%s/%s", obj.Bucket, summaryKey)
	return nil
}
