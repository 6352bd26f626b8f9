package nebulaerrors_test

import (
	"fmt"

	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// Example demonstrates creating a typed error with option keys attached.
func Example() {
	err := nebulaerrors.New(nebulaerrors.ErrorTypeMissingOption, "missing required options: url").
		WithDetail("keys", []string{"url"})

	fmt.Println(err.Error())
	fmt.Println(nebulaerrors.Keys(err))

	// Output:
	// missing_option: missing required options: url
	// [url]
}

// ExampleWrap shows that the original category survives wrapping.
func ExampleWrap() {
	cause := nebulaerrors.New(nebulaerrors.ErrorTypeNegativeValue, "the value of 'sink.max-retries' option shouldn't be negative, but is -1")
	err := nebulaerrors.Wrap(cause, nebulaerrors.ErrorTypeConfig, "failed to create table sink with mysql-x")

	fmt.Println(nebulaerrors.IsType(err, nebulaerrors.ErrorTypeConfig))
	fmt.Println(nebulaerrors.IsType(err, nebulaerrors.ErrorTypeNegativeValue))
	fmt.Println(nebulaerrors.TypeOf(err))

	// Output:
	// true
	// true
	// negative_value
}
