package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

var errFake = errors.New("boom")

// fakeConsole guarda as mensagens por nível.
type fakeConsole struct {
	infos, warnings, errors, successes []string
}

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type putCall struct {
	bucket, key, contentType string
	body                     []byte
}

type fakeStore struct {
	objects map[string][]byte
	puts    []putCall
	putErr  error
}

func (s *fakeStore) PutObject(_ context.Context, bucket, key string, body []byte, contentType string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.puts = append(s.puts, putCall{bucket: bucket, key: key, body: body, contentType: contentType})
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func (s *fakeStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

type fakeNotifier struct {
	subjects []string
	err      error
}

func (n *fakeNotifier) Notify(_ context.Context, subject, _ string) error {
	n.subjects = append(n.subjects, subject)
	return n.err
}

// fakeExport devolve um PDF mínimo e guarda o último relatório recebido.
type fakeExport struct {
	cost       entity.CostReport
	compliance entity.ComplianceReport
	inventory  entity.BackupInventoryReport
	status     entity.BackupStatusReport
	jsonValues []interface{}
}

var fakePDF = []byte("%PDF-1.3 fake")

func (e *fakeExport) ExportCostReportToPDF(r entity.CostReport) ([]byte, error) {
	e.cost = r
	return fakePDF, nil
}

func (e *fakeExport) ExportComplianceReportToPDF(r entity.ComplianceReport) ([]byte, error) {
	e.compliance = r
	return fakePDF, nil
}

func (e *fakeExport) ExportBackupInventoryToPDF(r entity.BackupInventoryReport) ([]byte, error) {
	e.inventory = r
	return fakePDF, nil
}

func (e *fakeExport) ExportBackupStatusToPDF(r entity.BackupStatusReport) ([]byte, error) {
	e.status = r
	return fakePDF, nil
}

func (e *fakeExport) ExportJSON(v interface{}) ([]byte, error) {
	e.jsonValues = append(e.jsonValues, v)
	return []byte(`{"summary":true}`), nil
}

type fakeIdentity struct {
	account string
	err     error
}

func (f fakeIdentity) GetAccountID(context.Context) (string, error) { return f.account, f.err }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
