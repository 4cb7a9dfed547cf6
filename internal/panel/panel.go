// Package panel implements the import form bound to a schematic editor
// window: validate the part number, run the converter, report the result.
package panel

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/metrics"
)

// Importer runs one conversion.
type Importer interface {
	Import(ctx context.Context, partID string) (converter.Request, error)
}

// lcscPattern is the usual LCSC part number shape. Other input is still
// passed to the converter, which is the authority on valid ids.
var lcscPattern = regexp.MustCompile(`^C\d+$`)

// Panel is stateless between submissions.
type Panel struct {
	importer Importer
	log      *zap.Logger
}

// New creates a panel.
func New(importer Importer, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{importer: importer, log: log}
}

// Submit handles one press of the import button. It never panics and never
// returns an error: every outcome is a Notification.
func (p *Panel) Submit(ctx context.Context, input string) (n Notification) {
	partID := strings.TrimSpace(input)

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("import panicked", zap.Any("panic", r), zap.String("part", partID))
			n = Present(partID, fmt.Errorf("panic: %v", r))
		}
		metrics.ImportsTotal.WithLabelValues(n.Kind.String()).Inc()
	}()

	if partID == "" {
		return Present(partID, ErrEmptyPartID)
	}
	if !lcscPattern.MatchString(partID) {
		p.log.Warn("part number does not look like an LCSC id", zap.String("part", partID))
	}

	_, err := p.importer.Import(ctx, partID)
	if err != nil {
		p.log.Warn("import failed", zap.String("part", partID), zap.Stringer("kind", KindOf(err)), zap.Error(err))
	} else {
		p.log.Info("part imported", zap.String("part", partID))
	}
	return Present(partID, err)
}
