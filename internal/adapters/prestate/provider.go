package prestate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// Provider produces the absolute prestate from outside the deploy config:
// an optional build command runs first, then the proof file is read. With no
// proof file the command's output is the prestate.
type Provider struct {
	projectRoot string
	source      config.PrestateConfig
	debug       bool
	output      io.Writer
	log         *slog.Logger
}

// NewProvider creates a provider from the runtime configuration
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	var source config.PrestateConfig
	if cfg.DeployConfig != nil {
		source = cfg.DeployConfig.Prestate
	}
	return &Provider{
		projectRoot: cfg.ProjectRoot,
		source:      source,
		debug:       cfg.Debug,
		output:      os.Stderr,
		log:         log.With("component", "prestate"),
	}
}

// proofFile is the part of the prestate proof file we read
type proofFile struct {
	Pre string `json:"pre"`
}

// Prestate implements usecase.PrestateProvider. A command without a file
// prints the prestate as the last line of its stdout.
func (p *Provider) Prestate(ctx context.Context) (common.Hash, error) {
	if p.source.Command == "" && p.source.File == "" {
		return common.Hash{}, &domain.ExternalProviderError{
			Source: "prestate",
			Err:    errors.New("no prestate.file or prestate.command configured"),
		}
	}

	if p.source.Command != "" {
		stdout, err := p.run(ctx, p.source.Command)
		if err != nil {
			return common.Hash{}, &domain.ExternalProviderError{Source: "prestate command", Err: err}
		}
		if p.source.File == "" {
			h, err := parsePrestate(lastLine(stdout))
			if err != nil {
				return common.Hash{}, &domain.ExternalProviderError{Source: "prestate command", Err: fmt.Errorf("output: %w", err)}
			}
			p.log.Debug("loaded prestate", "command", p.source.Command, "prestate", h.Hex())
			return h, nil
		}
	}

	path := p.source.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.projectRoot, path)
	}
	h, err := readProof(path)
	if err != nil {
		return common.Hash{}, &domain.ExternalProviderError{Source: "prestate file " + p.source.File, Err: err}
	}
	p.log.Debug("loaded prestate", "file", path, "prestate", h.Hex())
	return h, nil
}

func readProof(path string) (common.Hash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.Hash{}, err
	}
	var proof proofFile
	if err := json.Unmarshal(data, &proof); err != nil {
		return common.Hash{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if proof.Pre == "" {
		return common.Hash{}, errors.New(`missing field "pre"`)
	}
	h, err := parsePrestate(proof.Pre)
	if err != nil {
		return common.Hash{}, fmt.Errorf("field pre: %w", err)
	}
	return h, nil
}

// parsePrestate decodes a non-zero 0x-prefixed 32-byte value
func parsePrestate(value string) (common.Hash, error) {
	if value == "" {
		return common.Hash{}, errors.New("empty value")
	}
	b, err := hexutil.Decode(value)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("value is %d bytes, expected %d", len(b), common.HashLength)
	}
	h := common.BytesToHash(b)
	if h == (common.Hash{}) {
		return common.Hash{}, errors.New("value is zero")
	}
	return h, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// run executes command through the shell in the project root and returns its
// stdout. In debug mode stderr is streamed through a pty so build tools keep
// their colors.
func (p *Provider) run(ctx context.Context, command string) ([]byte, error) {
	start := time.Now()
	p.log.Debug("running prestate command", "command", command, "dir", p.projectRoot)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = p.projectRoot
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if !p.debug {
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			p.log.Error("prestate command failed", "error", err, "stdout", stdout.String(), "stderr", stderr.String())
			return nil, fmt.Errorf("%s: %w", command, err)
		}
		p.log.Debug("prestate command completed", "duration", time.Since(start))
		return stdout.Bytes(), nil
	}

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()
	cmd.Stderr = tty

	if err := cmd.Start(); err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	_ = tty.Close()

	// reading the pty ends with EIO once the command exits
	_, _ = io.Copy(p.output, ptyFile)
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	_, _ = p.output.Write(stdout.Bytes())
	p.log.Debug("prestate command completed", "duration", time.Since(start))
	return stdout.Bytes(), nil
}

var _ usecase.PrestateProvider = (*Provider)(nil)
