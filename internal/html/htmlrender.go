package html

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/edibridge/onboard/internal/errl"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

type Renderer struct {
	engine *html.Engine
}

// NewRenderer creates a new HTML renderer.
// It supports both embedded templates (in viewsfs) and external templates (in extDir).
// If reload is true, the templates are reloaded on every render, which is
// useful during development. viewsfs is the filesystem containing the views,
// extDir the directory with external templates overriding the embedded ones.
func NewRenderer(reload bool, viewsfs embed.FS, extDir string, extension string) (*Renderer, error) {

	engine, err := newEngine(reload, viewsfs, extDir, extension)
	if err != nil {
		return nil, errl.Error(err)
	}

	renderer := &Renderer{
		engine: engine,
	}

	return renderer, nil
}

func newEngine(reload bool, viewsfs embed.FS, extDir string, extension string) (*html.Engine, error) {

	// Check if extDir exists in the os file system
	exists := false
	fi, err := os.Stat(extDir)
	if err == nil && fi.IsDir() {
		exists = true
	}

	if exists {

		// Use the user-provided templates in the external directory
		slog.Info("Using external HTML templates")
		engine := html.NewFileSystem(http.Dir(extDir), extension)
		engine.Reload(reload)

		err = engine.Load()
		if err != nil {
			return nil, errl.Errorf("Failed to load external HTML templates: %w", err)
		}

		return engine, nil

	}

	// Strip the embed prefix so template names match the external layout
	viewsDir, err := fs.Sub(viewsfs, "views")
	if err != nil {
		return nil, errl.Errorf("Failed to load embedded HTML templates: %w", err)
	}

	slog.Info("Using embedded HTML templates")
	engine := html.NewFileSystem(http.FS(viewsDir), extension)
	engine.Reload(reload)

	err = engine.Load()
	if err != nil {
		return nil, errl.Errorf("Failed to load embedded HTML templates: %w", err)
	}

	return engine, nil
}

// ResponseSecurityHeaders sets the security headers for the response according to best practices
func ResponseSecurityHeaders(c *fiber.Ctx) {

	c.Set("Content-Security-Policy", "frame-ancestors 'none';")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Embedder-Policy", "require-corp")
	c.Set("Cross-Origin-Resource-Policy", "same-site")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), interest-cohort=()")
	c.Set("X-Powered-By", "webserver")

}

func (h *Renderer) Render(c *fiber.Ctx, templateName string, data map[string]any, layout ...string) error {

	c.Set("Content-Type", "text/html; charset=utf-8")
	ResponseSecurityHeaders(c)

	out := &bytes.Buffer{}

	if err := h.engine.Render(out, templateName, data, layout...); err != nil {
		slog.Error("Error rendering template",
			slog.String("error", err.Error()),
		)
		return fiber.NewError(fiber.StatusInternalServerError, "rendering response")
	}

	c.Send(out.Bytes())
	return nil

}
