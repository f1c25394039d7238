package intent

import (
	"context"
	"testing"

	"github.com/assetdesk/assetdesk/internal/store"
)

type fakeLookups struct {
	maintenanceRows []store.Row
	serviceRows     []store.Row
	designationRows []store.Row

	lastAssetTag     string
	lastEmployeeName string
	calls            int
}

func (f *fakeLookups) AssetsUnderMaintenance(ctx context.Context) []store.Row {
	f.calls++
	return f.maintenanceRows
}

func (f *fakeLookups) LastServiceForAsset(ctx context.Context, assetTag string) []store.Row {
	f.calls++
	f.lastAssetTag = assetTag
	return f.serviceRows
}

func (f *fakeLookups) EmployeeDesignation(ctx context.Context, employeeName string) []store.Row {
	f.calls++
	f.lastEmployeeName = employeeName
	return f.designationRows
}

func TestResolveAssetsUnderMaintenance(t *testing.T) {
	lookups := &fakeLookups{maintenanceRows: []store.Row{
		{Columns: []string{"asset_tag", "name", "location"}, Values: []any{"GNT-243", "Laptop", "HQ"}},
	}}
	resolver := NewResolver(lookups, nil)

	answer, ok := resolver.Resolve(context.Background(), AssetsUnderMaintenance, "Which assets are under maintenance?")
	if !ok {
		t.Fatal("Resolve() reported unknown intent")
	}
	if answer != "asset_tag: GNT-243, name: Laptop, location: HQ" {
		t.Fatalf("answer = %q", answer)
	}
}

func TestResolveAssetsUnderMaintenanceEmpty(t *testing.T) {
	resolver := NewResolver(&fakeLookups{}, nil)

	answer, ok := resolver.Resolve(context.Background(), AssetsUnderMaintenance, "anything under maintenance?")
	if !ok || answer != MessageNoMaintenance {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
}

func TestResolveLastServiceDateRequiresTag(t *testing.T) {
	lookups := &fakeLookups{}
	resolver := NewResolver(lookups, nil)

	answer, ok := resolver.Resolve(context.Background(), LastServiceDate, "What is the last service date?")
	if !ok || answer != MessageMissingAssetTag {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
	if lookups.calls != 0 {
		t.Fatal("no query should run when the tag is missing")
	}
}

func TestResolveLastServiceDate(t *testing.T) {
	lookups := &fakeLookups{serviceRows: []store.Row{
		{Columns: []string{"service_type", "last_service_date"}, Values: []any{"Repair", "2026-01-15"}},
	}}
	resolver := NewResolver(lookups, nil)

	answer, ok := resolver.Resolve(context.Background(), LastServiceDate, "last service for GNT-243?")
	if !ok {
		t.Fatal("Resolve() reported unknown intent")
	}
	if answer != "service_type: Repair, last_service_date: 2026-01-15" {
		t.Fatalf("answer = %q", answer)
	}
	if lookups.lastAssetTag != "GNT-243" {
		t.Fatalf("lookup used tag %q", lookups.lastAssetTag)
	}
}

func TestResolveLastServiceDateNoRows(t *testing.T) {
	resolver := NewResolver(&fakeLookups{}, nil)

	answer, ok := resolver.Resolve(context.Background(), LastServiceDate, "last service for GNT-999?")
	if !ok || answer != "No service information found for asset 'GNT-999'." {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
}

func TestResolveEmployeeDesignationRequiresName(t *testing.T) {
	resolver := NewResolver(&fakeLookups{}, nil)

	answer, ok := resolver.Resolve(context.Background(), EmployeeDesignation, "what is the designation")
	if !ok || answer != MessageMissingEmployeeName {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
}

func TestResolveEmployeeDesignation(t *testing.T) {
	lookups := &fakeLookups{designationRows: []store.Row{
		{Columns: []string{"designation"}, Values: []any{"Engineer"}},
	}}
	resolver := NewResolver(lookups, nil)

	answer, ok := resolver.Resolve(context.Background(), EmployeeDesignation, "designation of john doe")
	if !ok || answer != "designation: Engineer" {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
	if lookups.lastEmployeeName != "John Doe" {
		t.Fatalf("lookup used name %q", lookups.lastEmployeeName)
	}
}

func TestResolveEmployeeDesignationNoRows(t *testing.T) {
	resolver := NewResolver(&fakeLookups{}, nil)

	answer, ok := resolver.Resolve(context.Background(), EmployeeDesignation, "designation of jane roe")
	if !ok || answer != "No designation found for employee 'Jane Roe'." {
		t.Fatalf("answer = %q, ok = %v", answer, ok)
	}
}

func TestResolveUnknownIntent(t *testing.T) {
	resolver := NewResolver(&fakeLookups{}, nil)

	if _, ok := resolver.Resolve(context.Background(), Intent("weather"), "is it raining"); ok {
		t.Fatal("expected unknown intent to report false")
	}
}
