package postgres

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/store"
)

// Asset lifecycle statuses. Values match the assets.status CHECK constraint.
const (
	AssetStatusInUse            = "In Use"
	AssetStatusUnderMaintenance = "Under Maintenance"
	AssetStatusRetired          = "Retired"
)

// Maintenance log statuses. Values match the maintenance_logs.status CHECK
// constraint.
const (
	MaintenanceStatusReported   = "Reported"
	MaintenanceStatusInProgress = "In Progress"
	MaintenanceStatusResolved   = "Resolved"
)

// Repository provides entity-level helpers over the generic executor.
// Constraint enforcement (unique tags and emails, foreign keys) is left to
// the database; there is no validation layer here.
type Repository struct {
	reader store.Reader
	writer store.Writer
}

func NewRepository(reader store.Reader, writer store.Writer) *Repository {
	return &Repository{reader: reader, writer: writer}
}

func (r *Repository) AllAssets(ctx context.Context) []store.Row {
	return r.reader.Read(ctx, `
SELECT id, asset_tag, name, category, location, status
FROM assets
ORDER BY asset_tag ASC`)
}

func (r *Repository) AssetByTag(ctx context.Context, assetTag string) []store.Row {
	return r.reader.Read(ctx, `
SELECT id, asset_tag, name, category, location, status
FROM assets
WHERE asset_tag = $1`, assetTag)
}

func (r *Repository) AssetsUnderMaintenance(ctx context.Context) []store.Row {
	return r.reader.Read(ctx, `
SELECT asset_tag, name, location
FROM assets
WHERE status = $1`, AssetStatusUnderMaintenance)
}

func (r *Repository) LastServiceForAsset(ctx context.Context, assetTag string) []store.Row {
	return r.reader.Read(ctx, `
SELECT l.service_type, l.last_service_date
FROM asset_vendor_link l
JOIN assets a ON l.asset_id = a.id
WHERE a.asset_tag = $1`, assetTag)
}

func (r *Repository) EmployeeDesignation(ctx context.Context, employeeName string) []store.Row {
	return r.reader.Read(ctx, `
SELECT designation
FROM employees
WHERE name = $1`, employeeName)
}

type CreateAssetInput struct {
	AssetTag string
	Name     string
	Category string
	Location string
	Status   string
}

func (r *Repository) CreateAsset(ctx context.Context, in CreateAssetInput) int64 {
	status := in.Status
	if status == "" {
		status = AssetStatusInUse
	}
	return r.writer.Write(ctx, `
INSERT INTO assets (asset_tag, name, category, location, status)
VALUES ($1, $2, $3, $4, $5)`, in.AssetTag, in.Name, in.Category, in.Location, status)
}

func (r *Repository) UpdateAssetStatus(ctx context.Context, assetTag, status string) int64 {
	return r.writer.Write(ctx, `
UPDATE assets SET status = $1 WHERE asset_tag = $2`, status, assetTag)
}

func (r *Repository) DeleteAssetByTag(ctx context.Context, assetTag string) int64 {
	return r.writer.Write(ctx, `
DELETE FROM assets WHERE asset_tag = $1`, assetTag)
}

type CreateEmployeeInput struct {
	Name        string
	Email       string
	Designation string
}

func (r *Repository) CreateEmployee(ctx context.Context, in CreateEmployeeInput) int64 {
	return r.writer.Write(ctx, `
INSERT INTO employees (name, email, designation)
VALUES ($1, $2, $3)`, in.Name, in.Email, in.Designation)
}

type CreateMaintenanceLogInput struct {
	AssetID     int64
	ReportedBy  int64
	Description string
}

func (r *Repository) CreateMaintenanceLog(ctx context.Context, in CreateMaintenanceLogInput) int64 {
	return r.writer.Write(ctx, `
INSERT INTO maintenance_logs (asset_id, reported_by, description, status)
VALUES ($1, $2, $3, $4)`, in.AssetID, in.ReportedBy, in.Description, MaintenanceStatusReported)
}

func (r *Repository) ResolveMaintenanceLog(ctx context.Context, logID int64) int64 {
	return r.writer.Write(ctx, `
UPDATE maintenance_logs
SET status = $1, resolved_date = CURRENT_DATE
WHERE id = $2`, MaintenanceStatusResolved, logID)
}

func (r *Repository) OpenMaintenanceLogs(ctx context.Context) []store.Row {
	return r.reader.Read(ctx, `
SELECT m.id, a.asset_tag, m.description, m.status
FROM maintenance_logs m
JOIN assets a ON m.asset_id = a.id
WHERE m.status <> $1
ORDER BY m.id ASC`, MaintenanceStatusResolved)
}

type LinkAssetVendorInput struct {
	AssetID     int64
	VendorID    int64
	ServiceType string
}

func (r *Repository) LinkAssetVendor(ctx context.Context, in LinkAssetVendorInput) int64 {
	return r.writer.Write(ctx, `
INSERT INTO asset_vendor_link (asset_id, vendor_id, service_type, last_service_date)
VALUES ($1, $2, $3, CURRENT_DATE)`, in.AssetID, in.VendorID, in.ServiceType)
}
