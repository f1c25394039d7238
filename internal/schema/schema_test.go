package schema

import (
	"strings"
	"testing"
)

func TestTablesCoversTheSixEntities(t *testing.T) {
	want := []string{
		"departments",
		"employees",
		"assets",
		"maintenance_logs",
		"vendors",
		"asset_vendor_link",
	}
	tables := Tables()
	if len(tables) != len(want) {
		t.Fatalf("len(Tables()) = %d, want %d", len(tables), len(want))
	}
	for i, name := range want {
		if tables[i].Name != name {
			t.Fatalf("Tables()[%d].Name = %q, want %q", i, tables[i].Name, name)
		}
	}
}

func TestDescribeRendersMarkers(t *testing.T) {
	description := Describe()

	for _, fragment := range []string{
		"Table: assets",
		"  - id (INTEGER PK)",
		"  - asset_tag (VARCHAR)",
		"  - assigned_to (INTEGER FK->employees.id)",
		"Relationships:",
		"  - vendor_links (relates to asset_vendor_link)",
		"Table: maintenance_logs",
		"  - reported_by (INTEGER FK->employees.id)",
	} {
		if !strings.Contains(description, fragment) {
			t.Fatalf("Describe() missing %q", fragment)
		}
	}
}

func TestDescribeIsStableAcrossCalls(t *testing.T) {
	if Describe() != Describe() {
		t.Fatal("Describe() should return the cached rendering")
	}
}
