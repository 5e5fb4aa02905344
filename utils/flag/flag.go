/*
flag Package set up cli flags shared across binaries

Flags listed in this package are shared across boundaries and
service-agnostic. For service dependent flags please define in their
respective main package.
*/
package flag

import (
	"flag"
)

const (
	Pipeline  = "pipeline"
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", Pipeline, "'pipeline' or 'api_server'")
}
