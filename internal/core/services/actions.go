package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ShareService implements the interface.
var _ driving.ShareService = (*ShareService)(nil)

// ShareService renders and shares reports.
type ShareService struct {
	objects  driven.ObjectStore
	settings domain.ShareSettings
	now      func() time.Time

	// copyFn and openFn are replaced in tests.
	copyFn func(text string) error
	openFn func(target string) error
}

// NewShareService creates a new share service.
// The object store is optional; without it Upload returns ErrShareUnavailable.
func NewShareService(objects driven.ObjectStore, settings domain.ShareSettings) *ShareService {
	if settings.LinkTTL <= 0 {
		settings.LinkTTL = domain.DefaultAppSettings().Share.LinkTTL
	}
	return &ShareService{
		objects:  objects,
		settings: settings,
		now:      time.Now,
		copyFn:   copyToClipboard,
		openFn:   openURL,
	}
}

// Render formats the report as text, Markdown or JSON.
func (s *ShareService) Render(report *domain.Report, format domain.ShareFormat) ([]byte, error) {
	return RenderReport(report, format)
}

// CopyToClipboard copies the text rendering to the system clipboard.
func (s *ShareService) CopyToClipboard(_ context.Context, report *domain.Report) error {
	data, err := RenderReport(report, domain.ShareFormatText)
	if err != nil {
		return err
	}
	if err := s.copyFn(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Export writes the rendering to path and returns the path written.
// An empty path or an existing directory gets a file name derived from the profile.
func (s *ShareService) Export(
	_ context.Context, report *domain.Report, path string, format domain.ShareFormat,
) (string, error) {
	data, err := RenderReport(report, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "."
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, reportFileName(report, format))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: reports are meant to be shared
		return "", fmt.Errorf("write report: %w", err)
	}
	logger.Debug("Exported report to %s", path)
	return path, nil
}

// Upload stores the rendering in the object store and returns a presigned link.
func (s *ShareService) Upload(
	ctx context.Context, report *domain.Report, format domain.ShareFormat,
) (*domain.ShareLink, error) {
	if s.objects == nil {
		return nil, domain.ErrShareUnavailable
	}
	data, err := RenderReport(report, format)
	if err != nil {
		return nil, err
	}

	key := s.settings.Prefix + uuid.New().String() + format.Extension()
	if err := s.objects.Put(ctx, key, format.ContentType(), data); err != nil {
		logger.Warn("share upload failed: %v", err)
		return nil, fmt.Errorf("upload report: %w", err)
	}
	url, err := s.objects.PresignGet(ctx, key, s.settings.LinkTTL)
	if err != nil {
		return nil, fmt.Errorf("presign report link: %w", err)
	}

	return &domain.ShareLink{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(s.settings.LinkTTL),
	}, nil
}

// Open opens a share link or exported file with the system default handler.
func (s *ShareService) Open(_ context.Context, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return domain.NewFieldError("target", "is required")
	}
	return s.openFn(target)
}

// reportFileName builds "numen-john-smith-1988-04-15.md" style names.
func reportFileName(r *domain.Report, format domain.ShareFormat) string {
	var b strings.Builder
	for _, c := range strings.ToLower(r.Profile.FullName) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-':
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("numen-%s-%s%s", name, r.Profile.BirthDate, format.Extension())
}

// copyToClipboard copies text to the system clipboard using OS-specific commands.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("pbcopy")
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return errors.New("no clipboard utility found (install xclip or xsel)")
		}
	case osWindows:
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// openURL opens a URL or path using the system default handler.
func openURL(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", target)
	case osLinux:
		cmd = exec.Command("xdg-open", target)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
