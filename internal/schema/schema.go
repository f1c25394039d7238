// Package schema holds the fixed description of the relational model fed to
// the language model during NL to SQL translation. The description is
// rendered once per process; a schema change requires a restart.
package schema

import (
	"fmt"
	"strings"
	"sync"
)

type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	ForeignKey string // "table.column", empty when not a foreign key
}

type Relationship struct {
	Name   string
	Target string // table name
}

type Table struct {
	Name          string
	Columns       []Column
	Relationships []Relationship
}

// Tables is the authoritative, ordered table list. It mirrors the embedded
// migrations; the two must change together.
func Tables() []Table {
	return []Table{
		{
			Name: "departments",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "name", Type: "VARCHAR"},
				{Name: "head_id", Type: "INTEGER", ForeignKey: "employees.id"},
			},
			Relationships: []Relationship{
				{Name: "head", Target: "employees"},
				{Name: "employees", Target: "employees"},
				{Name: "assets", Target: "assets"},
			},
		},
		{
			Name: "employees",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "name", Type: "VARCHAR"},
				{Name: "email", Type: "VARCHAR"},
				{Name: "department_id", Type: "INTEGER", ForeignKey: "departments.id"},
				{Name: "designation", Type: "VARCHAR"},
				{Name: "date_joined", Type: "DATE"},
			},
			Relationships: []Relationship{
				{Name: "department", Target: "departments"},
				{Name: "assigned_assets", Target: "assets"},
				{Name: "reported_maintenance_logs", Target: "maintenance_logs"},
				{Name: "assigned_maintenance_logs", Target: "maintenance_logs"},
			},
		},
		{
			Name: "assets",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "asset_tag", Type: "VARCHAR"},
				{Name: "name", Type: "VARCHAR"},
				{Name: "category", Type: "VARCHAR"},
				{Name: "location", Type: "VARCHAR"},
				{Name: "purchase_date", Type: "DATE"},
				{Name: "warranty_until", Type: "DATE"},
				{Name: "assigned_to", Type: "INTEGER", ForeignKey: "employees.id"},
				{Name: "department_id", Type: "INTEGER", ForeignKey: "departments.id"},
				{Name: "status", Type: "VARCHAR"},
			},
			Relationships: []Relationship{
				{Name: "assigned_employee", Target: "employees"},
				{Name: "department", Target: "departments"},
				{Name: "maintenance_logs", Target: "maintenance_logs"},
				{Name: "vendor_links", Target: "asset_vendor_link"},
			},
		},
		{
			Name: "maintenance_logs",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "asset_id", Type: "INTEGER", ForeignKey: "assets.id"},
				{Name: "reported_by", Type: "INTEGER", ForeignKey: "employees.id"},
				{Name: "description", Type: "TEXT"},
				{Name: "status", Type: "VARCHAR"},
				{Name: "assigned_technician", Type: "INTEGER", ForeignKey: "employees.id"},
				{Name: "resolved_date", Type: "DATE"},
			},
			Relationships: []Relationship{
				{Name: "asset", Target: "assets"},
				{Name: "reporter", Target: "employees"},
				{Name: "technician", Target: "employees"},
			},
		},
		{
			Name: "vendors",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "name", Type: "VARCHAR"},
				{Name: "contact_person", Type: "VARCHAR"},
				{Name: "email", Type: "VARCHAR"},
				{Name: "phone", Type: "VARCHAR"},
				{Name: "address", Type: "VARCHAR"},
			},
			Relationships: []Relationship{
				{Name: "asset_links", Target: "asset_vendor_link"},
			},
		},
		{
			Name: "asset_vendor_link",
			Columns: []Column{
				{Name: "id", Type: "INTEGER", PrimaryKey: true},
				{Name: "asset_id", Type: "INTEGER", ForeignKey: "assets.id"},
				{Name: "vendor_id", Type: "INTEGER", ForeignKey: "vendors.id"},
				{Name: "service_type", Type: "VARCHAR"},
				{Name: "last_service_date", Type: "DATE"},
			},
			Relationships: []Relationship{
				{Name: "asset", Target: "assets"},
				{Name: "vendor", Target: "vendors"},
			},
		},
	}
}

var (
	describeOnce sync.Once
	described    string
)

// Describe renders the schema as prompt text. The result is computed once
// and reused for the process lifetime.
func Describe() string {
	describeOnce.Do(func() {
		described = render(Tables())
	})
	return described
}

func render(tables []Table) string {
	var b strings.Builder
	for _, table := range tables {
		fmt.Fprintf(&b, "Table: %s\nColumns:\n", table.Name)
		for _, col := range table.Columns {
			markers := ""
			if col.PrimaryKey {
				markers += " PK"
			}
			if col.ForeignKey != "" {
				markers += " FK->" + col.ForeignKey
			}
			fmt.Fprintf(&b, "  - %s (%s%s)\n", col.Name, col.Type, markers)
		}
		b.WriteString("Relationships:\n")
		for _, rel := range table.Relationships {
			fmt.Fprintf(&b, "  - %s (relates to %s)\n", rel.Name, rel.Target)
		}
		b.WriteString("\n")
	}
	return b.String()
}
