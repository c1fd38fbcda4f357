// @title Vet Clinic Records API
// @version 1.0
// @description Registro de animales, dueños y procedimientos aplicados.
// @BasePath /
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
