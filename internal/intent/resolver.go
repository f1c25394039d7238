package intent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/assetdesk/assetdesk/internal/store"
)

const (
	MessageMissingAssetTag     = "I couldn't find an asset tag in your message. Please specify it like 'GNT-243'."
	MessageMissingEmployeeName = "Please specify the employee name for the designation query."
	MessageNoMaintenance       = "No assets are currently under maintenance."
)

// Lookups is the slice of the asset repository the resolver needs.
type Lookups interface {
	AssetsUnderMaintenance(ctx context.Context) []store.Row
	LastServiceForAsset(ctx context.Context, assetTag string) []store.Row
	EmployeeDesignation(ctx context.Context, employeeName string) []store.Row
}

type Resolver struct {
	lookups Lookups
	logger  *slog.Logger
}

func NewResolver(lookups Lookups, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{lookups: lookups, logger: logger}
}

// Resolve answers a matched intent. Every message it returns is final for
// the request, including the instructional messages for failed parameter
// extraction. The second return is false only for intents the resolver
// does not know.
func (r *Resolver) Resolve(ctx context.Context, matched Intent, question string) (string, bool) {
	switch matched {
	case AssetsUnderMaintenance:
		rows := r.lookups.AssetsUnderMaintenance(ctx)
		if len(rows) == 0 {
			return MessageNoMaintenance, true
		}
		return store.Format(rows), true

	case LastServiceDate:
		assetTag, ok := ExtractAssetTag(question)
		if !ok {
			return MessageMissingAssetTag, true
		}
		rows := r.lookups.LastServiceForAsset(ctx, assetTag)
		if len(rows) == 0 {
			return fmt.Sprintf("No service information found for asset '%s'.", assetTag), true
		}
		return store.Format(rows), true

	case EmployeeDesignation:
		employeeName, ok := ExtractEmployeeName(question)
		if !ok {
			return MessageMissingEmployeeName, true
		}
		rows := r.lookups.EmployeeDesignation(ctx, employeeName)
		if len(rows) == 0 {
			return fmt.Sprintf("No designation found for employee '%s'.", employeeName), true
		}
		return store.Format(rows), true
	}

	r.logger.Warn("unknown intent", slog.String("intent", string(matched)))
	return "", false
}
