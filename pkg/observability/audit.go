package observability

import (
	"log/slog"

	"github.com/aretw0/outlet/pkg/domain"
)

// AuditHooks logs every placement event at Info level.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(e *domain.Event) {
		attrs := []any{
			"outlet", e.OutletID,
			"item", e.ItemID,
		}
		if e.From != "" {
			attrs = append(attrs, "from", e.From)
		}
		if e.To != "" {
			attrs = append(attrs, "to", e.To)
		}
		if e.PaneID != "" {
			attrs = append(attrs, "pane", e.PaneID)
		}
		if e.Split {
			attrs = append(attrs, "split", true)
		}
		if e.HiddenInCenter {
			attrs = append(attrs, "hidden_in_center", true)
		}
		if e.TargetItemID != "" {
			attrs = append(attrs, "target", e.TargetItemID)
		}
		logger.Info("outlet_"+string(e.Type), attrs...)
	}
	return domain.LifecycleHooks{
		OnPlace:   log,
		OnShow:    log,
		OnHide:    log,
		OnFocus:   log,
		OnLink:    log,
		OnDestroy: log,
	}
}
