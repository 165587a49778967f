package firmware

import (
	"github.com/sigreer/biosctl/internal/sysfs"
)

// RoleKind classifies a password slot.
type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleBiosAdmin
	RolePowerOn
)

// Role is the classified content of a role file. Raw always holds the
// original text so unknown roles can still be shown.
type Role struct {
	Kind RoleKind
	Raw  string
}

// ParseRole maps the text of a role file to its kind.
func ParseRole(raw string) Role {
	switch raw {
	case "bios-admin":
		return Role{Kind: RoleBiosAdmin, Raw: raw}
	case "power-on":
		return Role{Kind: RolePowerOn, Raw: raw}
	default:
		return Role{Kind: RoleUnknown, Raw: raw}
	}
}

func (r Role) String() string {
	return r.Raw
}

// Authentication is one password slot of a device.
type Authentication struct {
	Name              string
	Enabled           bool
	MinPasswordLength uint64
	MaxPasswordLength uint64
	Role              Role
}

// Authentications lists the device's password slots. Broken entries are
// logged and left out.
func (d *Device) Authentications() ([]Authentication, error) {
	scan, err := d.ScanAuthentications()
	if err != nil {
		return nil, err
	}
	return scan.Items, nil
}

// ScanAuthentications is Authentications plus the reasons entries were
// skipped.
func (d *Device) ScanAuthentications() (Scan[Authentication], error) {
	return walk(d, authenticationDir, "authentication", readAuthentication)
}

func readAuthentication(name, dir string) (Authentication, error) {
	enabled, err := sysfs.ReadValue(dir, "is_enabled")
	if err != nil {
		return Authentication{}, err
	}

	minLength, err := readUint(dir, "min_password_length")
	if err != nil {
		return Authentication{}, err
	}

	maxLength, err := readUint(dir, "max_password_length")
	if err != nil {
		return Authentication{}, err
	}

	role, err := sysfs.ReadValue(dir, "role")
	if err != nil {
		return Authentication{}, err
	}

	return Authentication{
		Name:              name,
		Enabled:           enabled != "0",
		MinPasswordLength: minLength,
		MaxPasswordLength: maxLength,
		Role:              ParseRole(role),
	}, nil
}
