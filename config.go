package cmenu

import (
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the picker needs at start-up.
type Config struct {
	// Headers are column specs of the form "[@][N]:LABEL". N is a
	// proportional weight (default 1); with '@' it is a fixed width.
	Headers []string `yaml:"headers"`

	// EnableCustom turns on the custom escape key.
	EnableCustom bool `yaml:"enable_custom"`

	Styles StyleConfig `yaml:"styles"`

	// LogFile receives debug logs when set.
	LogFile string `yaml:"log_file"`

	// InputFd and OutputFd are the controller's descriptors. They only come
	// from the command line; -1 means unset.
	InputFd  int `yaml:"-"`
	OutputFd int `yaml:"-"`
}

// StyleConfig holds style strings as accepted by ParseStyle. Empty strings
// select the defaults.
type StyleConfig struct {
	Header    string `yaml:"header"`
	Highlight string `yaml:"hi"`
	Entry     string `yaml:"entry"`
}

// NewConfig returns a config with no descriptors set.
func NewConfig() *Config {
	return &Config{InputFd: -1, OutputFd: -1}
}

// LoadConfigFile merges the YAML file at path into c. Unknown keys are
// rejected.
func (c *Config) LoadConfigFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return configError(errors.Wrap(err, "open config file"))
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return configError(errors.Wrapf(err, "parse config file %s", path))
	}
	return nil
}

// Validate checks that the required settings are present.
func (c *Config) Validate() error {
	if len(c.Headers) == 0 {
		return configErrorf("no header arguments found")
	}
	if c.InputFd < 0 {
		return configErrorf("no input fd given")
	}
	if c.OutputFd < 0 {
		return configErrorf("no output fd given")
	}
	return nil
}

// Columns parses the header specs. The fixed widths and the proportional
// weights must each sum to a 32-bit unsigned value.
func (c *Config) Columns() (*Columns, error) {
	cols := make([]Column, 0, len(c.Headers))
	var fixedSum, weightSum uint64
	for _, h := range c.Headers {
		col, err := ParseHeader(h)
		if err != nil {
			return nil, err
		}
		if col.Weight < 0 {
			fixedSum += uint64(-int64(col.Weight))
			if fixedSum > math.MaxUint32 {
				return nil, configErrorf("total width of the fixed-width headers would overflow")
			}
		} else {
			weightSum += uint64(col.Weight)
			if weightSum > math.MaxUint32 {
				return nil, configErrorf("total width of the variable-width headers would overflow")
			}
		}
		cols = append(cols, col)
	}
	return NewColumns(cols), nil
}

// Theme parses and resolves the three styles.
func (c *Config) Theme() (Theme, error) {
	header, err := styleOr(c.Styles.Header, DefaultHeaderStyle, "header")
	if err != nil {
		return Theme{}, err
	}
	hi, err := styleOr(c.Styles.Highlight, DefaultHighlightStyle, "hi")
	if err != nil {
		return Theme{}, err
	}
	entry, err := styleOr(c.Styles.Entry, DefaultEntryStyle, "entry")
	if err != nil {
		return Theme{}, err
	}
	return NewTheme(header, hi, entry), nil
}

func styleOr(s string, def RawStyle, which string) (RawStyle, error) {
	if s == "" {
		return def, nil
	}
	rs, err := ParseStyle(s)
	if err != nil {
		return RawStyle{}, configError(errors.Wrapf(err, "invalid %s style", which))
	}
	return rs, nil
}

// ParseHeader parses one "[@][N]:LABEL" column spec.
func ParseHeader(arg string) (Column, error) {
	spec, label, ok := strings.Cut(arg, ":")
	if !ok {
		return Column{}, configErrorf("invalid header %q (no ':' found)", arg)
	}

	weight := int32(1)
	if spec != "" {
		fixed := false
		if spec[0] == '@' {
			fixed = true
			spec = spec[1:]
		}
		n, err := ParseUint(spec, math.MaxInt32)
		if err != nil {
			return Column{}, configError(errors.Wrapf(err, "cannot parse header width in %q", arg))
		}
		weight = int32(n)
		if fixed {
			weight = -weight
		}
	}
	return Column{Weight: weight, Header: NewText(label)}, nil
}

// Number parsing failures.
var (
	ErrEmptyNumber = errors.New("the span is empty")
	ErrNotDigits   = errors.New("contains non-digit characters")
	ErrOverflow    = errors.New("overflow")
)

// ParseUint parses a plain decimal number no larger than max. Signs,
// spaces and other bases are rejected.
func ParseUint(s string, max int64) (int64, error) {
	if s == "" {
		return 0, ErrEmptyNumber
	}
	var r int64
	for i := 0; i < len(s); i++ {
		d := int64(s[i]) - '0'
		if d < 0 || d > 9 {
			return 0, ErrNotDigits
		}
		if r > math.MaxInt64/10 {
			return 0, ErrOverflow
		}
		r *= 10
		if r > max-d {
			return 0, ErrOverflow
		}
		r += d
	}
	return r, nil
}
