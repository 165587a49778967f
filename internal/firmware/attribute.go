package firmware

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sigreer/biosctl/internal/sysfs"
)

// Attribute type discriminators as written in the type file.
const (
	TypeEnumeration = "enumeration"
	TypeInteger     = "integer"
	TypeString      = "string"
)

const (
	currentValueFile = "current_value"
	defaultValueFile = "default_value"
)

// AttributeType is one of IntegerType, StringType or EnumerationType.
type AttributeType interface {
	// Kind returns the type discriminator.
	Kind() string
	isAttributeType()
}

// IntegerType accepts integers from Min to Max in increments of Step.
type IntegerType struct {
	Min  int64
	Max  int64
	Step uint64
}

// StringType accepts text between MinLength and MaxLength characters.
type StringType struct {
	MinLength uint64
	MaxLength uint64
}

// EnumerationType accepts one of PossibleValues.
type EnumerationType struct {
	PossibleValues []string
}

func (IntegerType) Kind() string     { return TypeInteger }
func (StringType) Kind() string      { return TypeString }
func (EnumerationType) Kind() string { return TypeEnumeration }

func (IntegerType) isAttributeType()     {}
func (StringType) isAttributeType()      {}
func (EnumerationType) isAttributeType() {}

// Value is the outcome of reading a value file. Firmware drivers commonly
// deny reads of protected settings, so a failed read is a normal state of
// an attribute, not an error of the catalog.
type Value struct {
	Text string
	Err  error
}

// OK reports whether the value was read.
func (v Value) OK() bool {
	return v.Err == nil
}

func readValue(dir, name string) Value {
	text, err := sysfs.ReadValue(dir, name)
	return Value{Text: text, Err: err}
}

// Attribute is one firmware setting.
type Attribute struct {
	Name                string
	Type                AttributeType
	Current             Value
	Default             Value
	DisplayName         string
	DisplayNameLanguage string

	// copied from the owning device; used only to write current_value
	dir string
}

// Path returns the attribute's directory.
func (a *Attribute) Path() string {
	return a.dir
}

// SetValue writes value verbatim to current_value and then reads the file
// back into Current, since the firmware may normalise or reject what was
// written. A failed write is returned as *sysfs.WriteError and leaves
// Current untouched.
func (a *Attribute) SetValue(value string) error {
	log.Debug().
		Str("path", filepath.Join(a.dir, currentValueFile)).
		Msgf("writing value %q to attribute", value)

	if err := sysfs.WriteValue(a.dir, currentValueFile, value); err != nil {
		return err
	}

	a.Current = readValue(a.dir, currentValueFile)
	return nil
}

// Attributes lists every attribute of the device that could be read.
// Broken entries are logged and left out.
func (d *Device) Attributes() ([]Attribute, error) {
	scan, err := d.ScanAttributes()
	if err != nil {
		return nil, err
	}
	return scan.Items, nil
}

// ScanAttributes is Attributes plus the reasons entries were skipped.
func (d *Device) ScanAttributes() (Scan[Attribute], error) {
	return walk(d, attributesDir, "attribute", readAttribute)
}

// Attribute returns the attribute with exactly the given name. The error
// matches ErrAttributeNotFound when no such attribute exists.
func (d *Device) Attribute(name string) (*Attribute, error) {
	attrs, err := d.Attributes()
	if err != nil {
		return nil, err
	}

	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i], nil
		}
	}

	return nil, &NotFoundError{Device: d.name, Name: name}
}

// SetAttribute looks up name and sets its current value.
func (d *Device) SetAttribute(name, value string) (*Attribute, error) {
	attr, err := d.Attribute(name)
	if err != nil {
		return nil, err
	}

	if err := attr.SetValue(value); err != nil {
		return nil, err
	}

	return attr, nil
}

func readAttribute(name, dir string) (Attribute, error) {
	displayName, err := sysfs.ReadValue(dir, "display_name")
	if err != nil {
		return Attribute{}, err
	}

	lang, err := sysfs.ReadValue(dir, "display_name_language_code")
	if err != nil {
		return Attribute{}, err
	}

	kind, err := sysfs.ReadValue(dir, "type")
	if err != nil {
		return Attribute{}, err
	}

	typ, err := readAttributeType(dir, kind)
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{
		Name:                name,
		Type:                typ,
		Current:             readValue(dir, currentValueFile),
		Default:             readValue(dir, defaultValueFile),
		DisplayName:         displayName,
		DisplayNameLanguage: lang,
		dir:                 dir,
	}, nil
}

func readAttributeType(dir, kind string) (AttributeType, error) {
	switch kind {
	case TypeEnumeration:
		raw, err := sysfs.ReadValue(dir, "possible_values")
		if err != nil {
			return nil, err
		}
		return EnumerationType{PossibleValues: strings.Split(raw, ";")}, nil

	case TypeInteger:
		minValue, err := readInt(dir, "min_value")
		if err != nil {
			return nil, err
		}
		maxValue, err := readInt(dir, "max_value")
		if err != nil {
			return nil, err
		}
		step, err := readUint(dir, "scalar_increment")
		if err != nil {
			return nil, err
		}
		return IntegerType{Min: minValue, Max: maxValue, Step: step}, nil

	case TypeString:
		minLength, err := readUint(dir, "min_length")
		if err != nil {
			return nil, err
		}
		maxLength, err := readUint(dir, "max_length")
		if err != nil {
			return nil, err
		}
		return StringType{MinLength: minLength, MaxLength: maxLength}, nil

	default:
		return nil, errors.Errorf("unknown attribute type: '%s'", kind)
	}
}

func readInt(dir, name string) (int64, error) {
	raw, err := sysfs.ReadValue(dir, name)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WithMessagef(err, "invalid %s", name)
	}
	return v, nil
}

func readUint(dir, name string) (uint64, error) {
	raw, err := sysfs.ReadValue(dir, name)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.WithMessagef(err, "invalid %s", name)
	}
	return v, nil
}
