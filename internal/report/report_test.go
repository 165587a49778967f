package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/biosctl/internal/db"
	"github.com/sigreer/biosctl/internal/firmware"
)

var errDenied = errors.New("permission denied")

func sampleAttributes() []firmware.Attribute {
	return []firmware.Attribute{
		{
			Name:        "WakeOnLan",
			Type:        firmware.EnumerationType{PossibleValues: []string{"Enabled", "Disabled"}},
			Current:     firmware.Value{Text: "Disabled"},
			Default:     firmware.Value{Err: errDenied},
			DisplayName: "Wake on LAN",
		},
		{
			Name:        "KbdBacklightTimeout",
			Type:        firmware.IntegerType{Min: -5, Max: 100, Step: 5},
			Current:     firmware.Value{Text: "30"},
			Default:     firmware.Value{Text: "10"},
			DisplayName: "Keyboard Backlight Timeout",
		},
		{
			Name:        "AssetTag",
			Type:        firmware.StringType{MinLength: 1, MaxLength: 64},
			Current:     firmware.Value{Err: errDenied},
			Default:     firmware.Value{Text: ""},
			DisplayName: "Asset Tag",
		},
	}
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "Enabled", ValueText(firmware.Value{Text: "Enabled"}))
	assert.Equal(t, AccessDenied, ValueText(firmware.Value{Err: errDenied}))
}

func TestRoleText(t *testing.T) {
	assert.Equal(t, "Change BIOS Settings", RoleText(firmware.ParseRole("bios-admin")))
	assert.Equal(t, "Power on computer", RoleText(firmware.ParseRole("power-on")))
	assert.Equal(t, "Unknown role (system-mgmt)", RoleText(firmware.ParseRole("system-mgmt")))
}

func TestWriteAttribute(t *testing.T) {
	attrs := sampleAttributes()

	t.Run("test enumeration", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAttribute(&buf, &attrs[0]))

		expected := strings.Join([]string{
			"WakeOnLan",
			"    Name: Wake on LAN",
			"    Type: Enumeration",
			"        Possible Values:",
			"            Enabled",
			"            Disabled",
			"    Current value: Disabled",
			"    Default value: <Access Denied>",
			"",
		}, "\n")
		assert.Equal(t, expected, buf.String())
	})

	t.Run("test integer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAttribute(&buf, &attrs[1]))

		out := buf.String()
		assert.Contains(t, out, "    Type: Integer\n")
		assert.Contains(t, out, "        Min: -5\n")
		assert.Contains(t, out, "        Max: 100\n")
		assert.Contains(t, out, "        Step: 5\n")
	})

	t.Run("test string", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAttribute(&buf, &attrs[2]))

		out := buf.String()
		assert.Contains(t, out, "    Type: String\n        Min: 1\n        Max: 64\n")
		assert.Contains(t, out, "    Current value: <Access Denied>\n")
		assert.Contains(t, out, "    Default value: \n")
	})
}

func TestWriteDevice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDevice(&buf, "dell-wmi-sysman", sampleAttributes()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Device: dell-wmi-sysman\n\nWakeOnLan\n"))
	assert.Contains(t, out, "\nKbdBacklightTimeout\n")
	assert.Contains(t, out, "\nAssetTag\n")
}

func TestWriteList(t *testing.T) {
	var buf bytes.Buffer
	WriteList(&buf, "dell-wmi-sysman", sampleAttributes())

	out := buf.String()
	assert.Contains(t, out, "Device: dell-wmi-sysman")
	assert.Contains(t, out, "WakeOnLan")
	assert.Contains(t, out, "Keyboard Backlight Timeout")
	assert.Contains(t, out, "enumeration")
}

func TestWriteInfo(t *testing.T) {
	t.Run("test full summary", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteInfo(&buf, Info{
			Device:     "dell-wmi-sysman",
			Attributes: 42,
			Skipped:    2,
			Modified:   true,
			Authentications: []firmware.Authentication{
				{Name: "Admin", Enabled: true, MinPasswordLength: 4, MaxPasswordLength: 32, Role: firmware.ParseRole("bios-admin")},
				{Name: "System", Role: firmware.ParseRole("power-on")},
			},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Device: dell-wmi-sysman\n    42 attributes\n")
		assert.Contains(t, out, "2 unreadable attributes skipped")
		assert.Contains(t, out, "Reboot pending: configuration was modified!")
		assert.Contains(t, out, "        Admin\n            Role: Change BIOS Settings\n            Status: Enabled\n")
		assert.Contains(t, out, "        System\n            Role: Power on computer\n            Status: Disabled\n")
	})

	t.Run("test quiet device", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteInfo(&buf, Info{Device: "thinklmi", Attributes: 3}))

		out := buf.String()
		assert.NotContains(t, out, "Reboot pending")
		assert.NotContains(t, out, "Authentication methods")
		assert.NotContains(t, out, "skipped")
	})
}

func TestWriteHistory(t *testing.T) {
	previous := "Disabled"
	changes := []*db.Change{
		{Attribute: "WakeOnLan", Previous: &previous, Requested: "Enabled", Timestamp: time.Now().Add(-3 * time.Hour)},
	}

	var buf bytes.Buffer
	WriteHistory(&buf, changes)

	out := buf.String()
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "WakeOnLan")
	assert.Contains(t, out, "Disabled")
	assert.Contains(t, out, AccessDenied)
}

func TestAttributeViews(t *testing.T) {
	views := NewAttributeViews(sampleAttributes())
	require.Len(t, views, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, views))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "enumeration", decoded[0]["type"])
	assert.Equal(t, []any{"Enabled", "Disabled"}, decoded[0]["possible_values"])
	assert.Nil(t, decoded[0]["default_value"])
	assert.Equal(t, "permission denied", decoded[0]["default_value_error"])

	assert.Equal(t, float64(-5), decoded[1]["min_value"])
	assert.Equal(t, float64(5), decoded[1]["scalar_increment"])
	assert.NotContains(t, decoded[1], "min_length")

	assert.Equal(t, float64(64), decoded[2]["max_length"])
	assert.Equal(t, "", decoded[2]["default_value"])
	assert.Nil(t, decoded[2]["current_value"])
}

func TestAuthenticationViews(t *testing.T) {
	views := NewAuthenticationViews([]firmware.Authentication{
		{Name: "NVMe", Enabled: true, MinPasswordLength: 8, MaxPasswordLength: 64, Role: firmware.ParseRole("nvme-hdd")},
	})

	require.Len(t, views, 1)
	assert.Equal(t, AuthenticationView{
		Name:              "NVMe",
		Enabled:           true,
		MinPasswordLength: 8,
		MaxPasswordLength: 64,
		Role:              "nvme-hdd",
	}, views[0])
}
