package jdbc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// Validator checks raw table options in two stages. ValidateFactoryOptions
// covers the per-key checks (required, typed, recognized) and Validate the
// cross-field rules. Both stop at the first failure.
type Validator struct {
	opts    *OptionRegistry
	dialect dialect.Dialect
}

// NewValidator creates a validator for the given option set and dialect.
func NewValidator(opts *OptionRegistry, d dialect.Dialect) *Validator {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Validator{opts: opts, dialect: d}
}

// ValidateFactoryOptions rejects missing required options, values that do not
// decode to their declared type and keys no option declares, in that order.
func (v *Validator) ValidateFactoryOptions(raw options.RawOptions) error {
	if missing := options.MissingKeys(raw, v.opts.RequiredOptions()); len(missing) > 0 {
		return nebulaerrors.New(nebulaerrors.ErrorTypeMissingOption,
			"missing required options: "+strings.Join(missing, ", ")).
			WithDetail("keys", missing)
	}

	for _, key := range v.opts.All() {
		if err := key.Check(raw); err != nil {
			return invalidOption(key.Key(), err)
		}
	}
	if s, ok, _ := v.opts.LookupCacheType.Lookup(raw); ok {
		if _, err := ParseCacheType(s); err != nil {
			return invalidOption(KeyLookupCacheType, err)
		}
	}

	if unknown := options.UnknownKeys(raw, v.opts.All()); len(unknown) > 0 {
		supported := options.Keys(v.opts.All())
		sort.Strings(supported)
		return nebulaerrors.New(nebulaerrors.ErrorTypeUnsupportedOption,
			"unsupported options: "+strings.Join(unknown, ", ")).
			WithDetail("keys", unknown).
			WithDetail("supported", supported)
	}
	return nil
}

// Validate enforces the cross-field rules on options that already passed
// ValidateFactoryOptions:
//
//  1. the dialect handles the url
//  2. username and password are set together
//  3. the four scan partition options are set together
//  4. the partition lower bound is not larger than the upper bound
//  5. lookup cache max rows and ttl are set together
//  6. lookup and sink max retries are not negative
func (v *Validator) Validate(raw options.RawOptions) error {
	url := v.opts.URL.Value(raw)
	if err := dialect.Check(v.dialect, url); err != nil {
		return err
	}

	if err := CheckAllOrNone(raw, v.opts.credentialGroup()...); err != nil {
		return err
	}
	if err := CheckAllOrNone(raw, v.opts.partitionGroup()...); err != nil {
		return err
	}
	if err := v.checkBounds(raw); err != nil {
		return err
	}
	if err := CheckAllOrNone(raw, v.opts.lookupCacheGroup()...); err != nil {
		return err
	}

	for _, o := range []*options.Option[int]{v.opts.LookupMaxRetries, v.opts.SinkMaxRetries} {
		if err := checkNonNegative(raw, o); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll runs ValidateFactoryOptions followed by Validate.
func (v *Validator) ValidateAll(raw options.RawOptions) error {
	if err := v.ValidateFactoryOptions(raw); err != nil {
		return err
	}
	return v.Validate(raw)
}

func (v *Validator) checkBounds(raw options.RawOptions) error {
	lower, hasLower, err := v.opts.ScanPartitionLowerBound.Lookup(raw)
	if err != nil {
		return invalidOption(KeyScanPartitionLowerBound, err)
	}
	upper, hasUpper, err := v.opts.ScanPartitionUpperBound.Lookup(raw)
	if err != nil {
		return invalidOption(KeyScanPartitionUpperBound, err)
	}
	if !hasLower || !hasUpper || lower <= upper {
		return nil
	}
	return nebulaerrors.Newf(nebulaerrors.ErrorTypeInvalidRange,
		"'%s'='%d' must not be larger than '%s'='%d'",
		KeyScanPartitionLowerBound, lower, KeyScanPartitionUpperBound, upper).
		WithDetail("keys", []string{KeyScanPartitionLowerBound, KeyScanPartitionUpperBound}).
		WithDetail("lower", lower).
		WithDetail("upper", upper)
}

// CheckAllOrNone fails unless either every option of group or none of them is
// explicitly set. The error lists every key of the group.
func CheckAllOrNone(raw options.RawOptions, group ...options.Key) error {
	present := options.CountPresent(raw, group...)
	if present == 0 || present == len(group) {
		return nil
	}
	keys := options.Keys(group)
	return nebulaerrors.New(nebulaerrors.ErrorTypeIncompleteOptionGroup,
		"either all or none of the following options should be provided:\n"+strings.Join(keys, "\n")).
		WithDetail("keys", keys).
		WithDetail("present", present)
}

func checkNonNegative(raw options.RawOptions, o *options.Option[int]) error {
	n, ok, err := o.Lookup(raw)
	if err != nil {
		return invalidOption(o.Key(), err)
	}
	if !ok || n >= 0 {
		return nil
	}
	return nebulaerrors.Newf(nebulaerrors.ErrorTypeNegativeValue,
		"the value of '%s' option shouldn't be negative, but is %d", o.Key(), n).
		WithDetail("keys", []string{o.Key()}).
		WithDetail("value", n)
}

func invalidOption(key string, cause error) *nebulaerrors.Error {
	return nebulaerrors.Wrap(cause, nebulaerrors.ErrorTypeInvalidOption,
		fmt.Sprintf("could not parse value for option '%s'", key)).
		WithDetail("keys", []string{key})
}
