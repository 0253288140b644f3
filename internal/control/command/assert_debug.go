//go:build debug

package command

import "fmt"

func assertIntegrity(t *Table) {
	if err := t.Validate(); err != nil {
		panic(fmt.Sprintf("command table integrity violated: %s", err.Error()))
	}
}
