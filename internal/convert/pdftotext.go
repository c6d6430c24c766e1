// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os/exec"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout *bytes.Buffer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout *bytes.Buffer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// PdftotextConverter converts PDFs by running the pdftotext binary with
// page breaks suppressed, which flattens the bulletin table into the single
// line stream the parser expects.
type PdftotextConverter struct {
	exec executor
}

// NewPdftotextConverter returns a converter backed by the pdftotext binary.
// It verifies the binary is on PATH before returning.
func NewPdftotextConverter() (*PdftotextConverter, error) {
	return newPdftotextConverter(defaultExec)
}

func newPdftotextConverter(exec executor) (*PdftotextConverter, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextConverter{exec: exec}, nil
}

// Convert runs pdftotext over the PDF at pdfPath and returns its stdout.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	var out bytes.Buffer
	// "-" writes the text to stdout; -nopgbrk drops the form-feed page
	// separators that would otherwise land in the middle of table cells.
	args := []string{"-nopgbrk", pdfPath, "-"}
	if err := p.exec.RunPiped(binPdftotext, args, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", binPdftotext, pdfPath)
	}
	return out.String(), nil
}
