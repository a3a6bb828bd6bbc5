package portal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// screenshot saves a viewport screenshot to the artifacts directory.
// No-op unless debug mode is on.
func (s *Session) screenshot(name string) {
	if !s.opts.Debug {
		return
	}

	var buf []byte
	if err := s.runTimeout(10*time.Second, chromedp.CaptureScreenshot(&buf)); err != nil {
		s.log.WithError(err).Debugf("Screenshot %s failed", name)
		return
	}

	path := s.artifactPath(name)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		s.log.WithError(err).Debugf("Writing screenshot %s failed", name)
		return
	}
	s.log.Debugf("Screenshot saved to %s", path)
}

// dumpHTML writes the current page markup to the artifacts directory.
// Always runs: HTML dumps are failure diagnostics, not debug decoration.
func (s *Session) dumpHTML(name string) {
	html, err := s.pageHTML()
	if err != nil {
		s.log.WithError(err).Debugf("HTML dump %s failed", name)
		return
	}

	path := s.artifactPath(name)
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		s.log.WithError(err).Debugf("Writing HTML dump %s failed", name)
		return
	}
	s.log.Debugf("HTML saved to %s", path)
}

// captureArtifacts saves both a screenshot and an HTML dump under the
// given prefix when debug mode is on.
func (s *Session) captureArtifacts(prefix string) {
	if !s.opts.Debug {
		return
	}
	s.screenshot(prefix + ".png")
	s.dumpHTML(prefix + ".html")
}

func (s *Session) artifactPath(name string) string {
	if s.opts.ArtifactsDir == "" {
		return name
	}
	return filepath.Join(s.opts.ArtifactsDir, name)
}
