package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{"fileVersion":"1.0","configSnapshotId":"abc","configurationItems":[` +
	`{"resourceType":"AWS::EC2::Instance","resourceId":"i-1","resourceName":"web","ARN":"arn:aws:ec2:us-east-1:1:instance/i-1","awsRegion":"us-east-1","availabilityZone":"us-east-1a","configurationItemStatus":"OK"},` +
	`{"resourceType":"AWS::EC2::Instance","resourceId":"i-2","awsRegion":"us-east-1"},` +
	`{"resourceType":"AWS::S3::Bucket","resourceId":"logs","configurationItemStatus":"ResourceDiscovered"},` +
	`{"resourceId":"orphan"}]}`

func gzipped(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDerivedKey(t *testing.T) {
	tests := []struct {
		key     string
		suffix  string
		want    string
		wantErr bool
	}{
		{key: "AWSLogs/1/Config/snap.json", suffix: FormattedSuffix, want: "AWSLogs/1/Config/snap_formatted.json"},
		{key: "AWSLogs/1/Config/snap.json.gz", suffix: SummarySuffix, want: "AWSLogs/1/Config/snap_summary.json"},
		{key: "snap.json.json", suffix: FormattedSuffix, want: "snap_formatted.json"},
		{key: "snapshot.txt", suffix: FormattedSuffix, wantErr: true},
		{key: "snapshot.gz", suffix: SummarySuffix, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := DerivedKey(tt.key, tt.suffix)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrSameDerivedKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsProcessedKey(t *testing.T) {
	assert.True(t, IsProcessedKey("a/snap_formatted.json"))
	assert.True(t, IsProcessedKey("a/snap_summary.json"))
	assert.False(t, IsProcessedKey("a/snap.json.gz"))
}

func TestDecompress(t *testing.T) {
	out, err := Decompress(gzipped(t, `{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))

	plain := []byte(`{"a":1}`)
	out, err = Decompress(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, out)

	_, err = Decompress([]byte{0x1f, 0x8b, 0x00})
	assert.Error(t, err)
}

func TestSummarizeSnapshot(t *testing.T) {
	var snapshot entity.ConfigSnapshot
	require.NoError(t, json.Unmarshal([]byte(snapshotJSON), &snapshot))

	summary := SummarizeSnapshot(snapshot)
	assert.Equal(t, 3, summary.TotalResources)
	assert.Equal(t, map[string]int{"AWS::EC2::Instance": 2, "AWS::S3::Bucket": 1}, summary.ResourceTypeCounts)

	instances := summary.ResourceDetails["AWS::EC2::Instance"]
	require.Len(t, instances, 2)
	assert.Equal(t, entity.SnapshotResource{
		ResourceID:         "i-1",
		ResourceName:       "web",
		ARN:                "arn:aws:ec2:us-east-1:1:instance/i-1",
		AWSRegion:          "us-east-1",
		AvailabilityZone:   "us-east-1a",
		ConfigurationState: "OK",
	}, instances[0])
	assert.Equal(t, "N/A", instances[1].ResourceName)
	assert.Equal(t, "N/A", instances[1].ConfigurationState)
	assert.Equal(t, "ResourceDiscovered", summary.ResourceDetails["AWS::S3::Bucket"][0].ConfigurationState)
}

func TestProcessSnapshot(t *testing.T) {
	const key = "AWSLogs/1/Config/us-east-1/snap.json.gz"
	store := &fakeStore{objects: map[string][]byte{"config-bucket/" + key: gzipped(t, snapshotJSON)}}
	export := &fakeExport{}
	uc := NewConfigSnapshotUseCase(store, export, &fakeConsole{})

	resp, err := uc.Process(context.Background(), types.SnapshotConfig{GenerateSummary: true}, []SnapshotObject{{Bucket: "config-bucket", Key: key}})
	require.NoError(t, err)
	assert.Equal(t, types.HandlerResponse{StatusCode: 200, Body: "Successfully processed Config snapshot file"}, resp)

	require.Len(t, store.puts, 2)
	formatted := store.puts[0]
	assert.Equal(t, "AWSLogs/1/Config/us-east-1/snap_formatted.json", formatted.key)
	assert.Equal(t, ContentTypeJSON, formatted.contentType)
	assert.True(t, bytes.HasPrefix(formatted.body, []byte("{\n  \"fileVersion\": \"1.0\",")), "key order is preserved")

	assert.Equal(t, "AWSLogs/1/Config/us-east-1/snap_summary.json", store.puts[1].key)
	require.Len(t, export.jsonValues, 1)
	summary, ok := export.jsonValues[0].(entity.SnapshotSummary)
	require.True(t, ok)
	assert.Equal(t, 3, summary.TotalResources)
}

func TestProcessSnapshotWithoutSummary(t *testing.T) {
	store := &fakeStore{objects: map[string][]byte{"b/snap.json": []byte(snapshotJSON)}}
	uc := NewConfigSnapshotUseCase(store, &fakeExport{}, &fakeConsole{})

	_, err := uc.Process(context.Background(), types.SnapshotConfig{}, []SnapshotObject{{Bucket: "b", Key: "snap.json"}})
	require.NoError(t, err)
	require.Len(t, store.puts, 1)
	assert.Equal(t, "snap_formatted.json", store.puts[0].key)
}

func TestProcessSnapshotSkipsDerivedFiles(t *testing.T) {
	store := &fakeStore{}
	uc := NewConfigSnapshotUseCase(store, &fakeExport{}, &fakeConsole{})

	resp, err := uc.Process(context.Background(), types.SnapshotConfig{GenerateSummary: true}, []SnapshotObject{
		{Bucket: "b", Key: "snap_formatted.json"},
		{Bucket: "b", Key: "snap_summary.json"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.HandlerResponse{StatusCode: 200, Body: "Skipped already processed file"}, resp)
	assert.Empty(t, store.puts)
}

func TestProcessSnapshotErrors(t *testing.T) {
	tests := []struct {
		name    string
		objects map[string][]byte
		key     string
		wantErr error
	}{
		{name: "empty object", objects: map[string][]byte{"b/snap.json": {}}, key: "snap.json", wantErr: types.ErrEmptySnapshotInput},
		{name: "key without json extension", objects: map[string][]byte{"b/snap.txt": []byte(`{}`)}, key: "snap.txt", wantErr: types.ErrSameDerivedKey},
		{name: "invalid json", objects: map[string][]byte{"b/snap.json": []byte(`{"a":`)}, key: "snap.json"},
		{name: "missing object", objects: map[string][]byte{}, key: "snap.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{objects: tt.objects}
			console := &fakeConsole{}
			uc := NewConfigSnapshotUseCase(store, &fakeExport{}, console)

			_, err := uc.Process(context.Background(), types.SnapshotConfig{}, []SnapshotObject{{Bucket: "b", Key: tt.key}})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, store.puts)
			assert.Len(t, console.errors, 1)
		})
	}
}
