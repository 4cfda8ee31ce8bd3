package cli

import (
	"testing"

	"github.com/diillson/aws-report-lambdas/internal/shared/types"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestResultStatus(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	tests := []struct {
		name     string
		resp     types.HandlerResponse
		wantText string
		wantCode string
	}{
		{name: "status", resp: types.HandlerResponse{Status: "ok", S3Key: "k"}, wantText: "ok", wantCode: "\x1b[32"},
		{name: "200", resp: types.HandlerResponse{StatusCode: 200}, wantText: "200", wantCode: "\x1b[32"},
		{name: "400", resp: types.HandlerResponse{StatusCode: 400}, wantText: "400", wantCode: "\x1b[33"},
		{name: "500", resp: types.HandlerResponse{StatusCode: 500, Body: "REPORT_BUCKET not configured."}, wantText: "500", wantCode: "\x1b[31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultStatus(tt.resp)
			assert.Contains(t, got, tt.wantText)
			assert.Contains(t, got, tt.wantCode)
		})
	}
}
