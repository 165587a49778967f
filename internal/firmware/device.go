// Package firmware discovers the BIOS/EFI settings a kernel driver
// exposes under /sys/class/firmware-attributes.
//
// Each device directory carries an attributes catalog, one subdirectory
// per setting, and an authentication catalog, one subdirectory per
// password slot. Nothing is cached: every call re-reads the filesystem.
package firmware

import (
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sigreer/biosctl/internal/sysfs"
)

const (
	// DefaultRoot is where the kernel publishes firmware attribute devices.
	DefaultRoot = "/sys/class/firmware-attributes"

	// DefaultDevice is the Dell WMI system management driver.
	DefaultDevice = "dell-wmi-sysman"

	// DefaultWorkers bounds concurrent per-entry reads during a walk.
	DefaultWorkers = 8
)

const (
	attributesDir     = "attributes"
	authenticationDir = "authentication"
	pendingRebootFile = "pending_reboot"
)

// Device is one firmware attribute provider, e.g. dell-wmi-sysman or
// thinklmi. It holds only its name and path.
type Device struct {
	name    string
	path    string
	workers int
}

type options struct {
	root    string
	workers int
}

// Option customises FromName.
type Option func(*options)

// WithRoot resolves the device under root instead of DefaultRoot.
func WithRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithWorkers sets how many catalog entries are read concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// FromName returns the device called name. It never touches the
// filesystem and cannot fail.
func FromName(name string, opts ...Option) *Device {
	o := options{
		root:    DefaultRoot,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Device{
		name:    name,
		path:    filepath.Join(o.root, name),
		workers: o.workers,
	}
}

// Name returns the device name as given to FromName.
func (d *Device) Name() string {
	return d.name
}

// Path returns the device root directory.
func (d *Device) Path() string {
	return d.path
}

// AuthenticationPath returns the directory of the named password slot.
func (d *Device) AuthenticationPath(name string) string {
	return filepath.Join(d.path, authenticationDir, name)
}

func (d *Device) attributesPath() string {
	return filepath.Join(d.path, attributesDir)
}

// Modified reports whether the firmware has staged changes that need a
// reboot to apply. Only the value 1 means true.
func (d *Device) Modified() (bool, error) {
	dir := d.attributesPath()
	log.Debug().Str("path", dir).Msg("reading pending reboot flag")

	raw, err := sysfs.ReadValue(dir, pendingRebootFile)
	if err != nil {
		return false, err
	}

	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return false, errors.WithMessagef(err, "invalid %s value", pendingRebootFile)
	}

	return v == 1, nil
}
