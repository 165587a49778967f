// Package report renders attributes, authentications and the change
// history as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sigreer/biosctl/internal/db"
	"github.com/sigreer/biosctl/internal/firmware"
)

// AccessDenied stands in for a value that could not be read.
const AccessDenied = "<Access Denied>"

// ValueText returns the value or AccessDenied.
func ValueText(v firmware.Value) string {
	if !v.OK() {
		return AccessDenied
	}
	return v.Text
}

// RoleText describes what a password slot protects.
func RoleText(r firmware.Role) string {
	switch r.Kind {
	case firmware.RoleBiosAdmin:
		return "Change BIOS Settings"
	case firmware.RolePowerOn:
		return "Power on computer"
	default:
		return fmt.Sprintf("Unknown role (%s)", r.Raw)
	}
}

// WriteAttribute writes the full description of one attribute.
func WriteAttribute(w io.Writer, a *firmware.Attribute) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", a.Name)
	fmt.Fprintf(&b, "    Name: %s\n", a.DisplayName)

	switch t := a.Type.(type) {
	case firmware.IntegerType:
		b.WriteString("    Type: Integer\n")
		fmt.Fprintf(&b, "        Min: %d\n", t.Min)
		fmt.Fprintf(&b, "        Max: %d\n", t.Max)
		fmt.Fprintf(&b, "        Step: %d\n", t.Step)
	case firmware.StringType:
		b.WriteString("    Type: String\n")
		fmt.Fprintf(&b, "        Min: %d\n", t.MinLength)
		fmt.Fprintf(&b, "        Max: %d\n", t.MaxLength)
	case firmware.EnumerationType:
		b.WriteString("    Type: Enumeration\n")
		b.WriteString("        Possible Values:\n")
		for _, p := range t.PossibleValues {
			fmt.Fprintf(&b, "            %s\n", p)
		}
	}

	fmt.Fprintf(&b, "    Current value: %s\n", ValueText(a.Current))
	fmt.Fprintf(&b, "    Default value: %s\n", ValueText(a.Default))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDevice writes a device header followed by every attribute.
func WriteDevice(w io.Writer, device string, attrs []firmware.Attribute) error {
	if _, err := fmt.Fprintf(w, "Device: %s\n\n", device); err != nil {
		return err
	}
	for i := range attrs {
		if err := WriteAttribute(w, &attrs[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteList writes a table of attribute names and display names.
func WriteList(w io.Writer, device string, attrs []firmware.Attribute) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Device: %s", device)
	t.AppendHeader(table.Row{"Setting", "Name", "Type"})

	for _, a := range attrs {
		t.AppendRow(table.Row{a.Name, a.DisplayName, a.Type.Kind()})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

// Info summarises a device for the info command.
type Info struct {
	Device          string
	Attributes      int
	Skipped         int
	Modified        bool
	Authentications []firmware.Authentication
}

// WriteInfo writes the device summary.
func WriteInfo(w io.Writer, info Info) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Device: %s\n", info.Device)
	fmt.Fprintf(&b, "    %d attributes\n", info.Attributes)
	if info.Skipped > 0 {
		fmt.Fprintf(&b, "    %d unreadable attributes skipped\n", info.Skipped)
	}

	if info.Modified {
		b.WriteString("\n    Reboot pending: configuration was modified!\n")
	}

	if len(info.Authentications) > 0 {
		b.WriteString("\n    Authentication methods:\n")
	}
	for _, a := range info.Authentications {
		status := "Disabled"
		if a.Enabled {
			status = "Enabled"
		}

		fmt.Fprintf(&b, "        %s\n", a.Name)
		fmt.Fprintf(&b, "            Role: %s\n", RoleText(a.Role))
		fmt.Fprintf(&b, "            Status: %s\n", status)
		fmt.Fprintf(&b, "            Password length: %d-%d\n", a.MinPasswordLength, a.MaxPasswordLength)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHistory writes a table of recorded changes.
func WriteHistory(w io.Writer, changes []*db.Change) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"When", "Setting", "Previous", "Requested", "Result"})

	for _, c := range changes {
		t.AppendRow(table.Row{
			humanize.Time(c.Timestamp),
			c.Attribute,
			optional(c.Previous),
			c.Requested,
			optional(c.Resulting),
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

func optional(s *string) string {
	if s == nil {
		return AccessDenied
	}
	return *s
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
