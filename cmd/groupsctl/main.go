// Command groupsctl runs operator tasks against the group directory database.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errRecordsFailed) {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1)
	}
}
