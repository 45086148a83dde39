package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DevicePicker is the terminal rendition of the platform image picker:
// "library" is an interactive path prompt validated against the
// filesystem, "camera" is an external capture command writing into the
// photos directory.
type DevicePicker struct {
	// Prompt asks the user for an image path. An empty answer means the
	// user cancelled.
	Prompt func(prompt string) (string, error)
	// CameraCommand is the external capture command (e.g. "fswebcam
	// --no-banner"); the output path is appended as the last argument.
	CameraCommand string
	// PhotosDir receives camera captures.
	PhotosDir string

	now func() time.Time
}

func (p *DevicePicker) PickFromLibrary(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	answer, err := p.Prompt("Path to image (empty line to cancel)")
	if err != nil {
		return "", err
	}

	path := strings.TrimSpace(answer)
	if path == "" {
		return "", ErrCancelled
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", ErrNoImage
	}
	return path, nil
}

func (p *DevicePicker) CaptureFromCamera(ctx context.Context) (string, error) {
	command := strings.Fields(p.CameraCommand)
	if len(command) == 0 {
		return "", fmt.Errorf("camera capture command not configured")
	}

	nowFn := p.now
	if nowFn == nil {
		nowFn = time.Now
	}
	out := filepath.Join(p.PhotosDir, fmt.Sprintf("capture-%d.jpg", nowFn().UnixMilli()))

	cmd := exec.CommandContext(ctx, command[0], append(command[1:], out)...)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("camera capture: %w", err)
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		return "", ErrNoImage
	}
	return out, nil
}
