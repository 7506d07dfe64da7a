//go:build windows

package runner

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

func startPipe(cmd *exec.Cmd) (io.ReadCloser, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	pw.Close()
	return pr, nil
}

func startPTY(*exec.Cmd, uint16, uint16) (io.ReadCloser, error) {
	return nil, errors.New("pty mode is not supported on windows")
}

// Windows doesn't know the SIGINT
func interrupt(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

func kill(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
