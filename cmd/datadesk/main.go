package main

import (
	"github.com/oneconcern/datadesk/cmd/datadesk/cmd"
)

func main() {
	cmd.Execute()
}
