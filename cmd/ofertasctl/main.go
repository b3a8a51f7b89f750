// Command ofertasctl consulta la tabla de transiciones y el flujo de ofertas sin levantar el MID.
package main

import (
	"os"
)

func main() {
	if err := Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
