package diagram

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/diillson/aws-report-lambdas/internal/shared/types"
)

const defaultRenderTimeout = 60 * time.Second

var supportedFormats = map[string]bool{"png": true, "svg": true}

// GraphvizRenderer desenha o grafo chamando o binário dot do Graphviz.
type GraphvizRenderer struct {
	dotBinary string
	timeout   time.Duration
}

// NewGraphvizRenderer cria o renderer; dotBinary vazio usa "dot" do PATH.
func NewGraphvizRenderer(dotBinary string, timeout time.Duration) repository.DiagramRenderer {
	if dotBinary == "" {
		dotBinary = "dot"
	}
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &GraphvizRenderer{dotBinary: dotBinary, timeout: timeout}
}

func (r *GraphvizRenderer) Render(ctx context.Context, topology entity.NetworkTopology, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if !supportedFormats[format] {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}

	path, err := exec.LookPath(r.dotBinary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDotNotFound, r.dotBinary)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-T"+format)
	cmd.Stdin = strings.NewReader(BuildGraph(topology).String())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error running %s: %w: %s", r.dotBinary, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

