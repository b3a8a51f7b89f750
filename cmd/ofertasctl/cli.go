package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"

	"github.com/udistrital/inmobiliaria_mid/internal/clients"
	"github.com/udistrital/inmobiliaria_mid/internal/lifecycle"
	"github.com/udistrital/inmobiliaria_mid/models"
)

// salida se reemplaza en pruebas.
var salida io.Writer = os.Stdout

// Options agrupa los subcomandos. Los tags los interpreta github.com/jessevdk/go-flags.
type Options struct {
	Siguientes SiguientesCmd `command:"siguientes" description:"Etapas a las que puede pasar una oferta"`
	Flujo      FlujoCmd      `command:"flujo" description:"Stepper del flujo principal"`
	Tabla      TablaCmd      `command:"tabla" description:"Tabla completa de transiciones"`
	Seed       SeedCmd       `command:"seed" description:"Valida y resume un archivo semilla"`
}

// Run parsea args y ejecuta el subcomando elegido.
func Run(args []string) error {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.Default)
	_, err := parser.ParseArgs(args)
	return err
}

// SiguientesCmd imprime las transiciones de una etapa.
type SiguientesCmd struct {
	Etapa string `short:"e" long:"etapa" required:"true" description:"etapa actual"`
}

func (c *SiguientesCmd) Execute(_ []string) error {
	etapa := models.ParseEtapa(c.Etapa)
	siguientes := lifecycle.EtapasSiguientes(etapa)
	fmt.Fprintf(salida, "%s ->\n", pintar(etapa))
	if len(siguientes) == 0 {
		fmt.Fprintln(salida, "  (sin transiciones)")
		return nil
	}
	for _, e := range siguientes {
		fmt.Fprintf(salida, "  %s\n", pintar(e))
	}
	return nil
}

// FlujoCmd imprime el stepper marcando el avance de la etapa.
type FlujoCmd struct {
	Etapa string `short:"e" long:"etapa" description:"etapa actual"`
}

func (c *FlujoCmd) Execute(_ []string) error {
	etapa := models.ParseEtapa(c.Etapa)
	fmt.Fprintf(salida, "indice: %d\n", lifecycle.IndiceFlujo(etapa))
	for _, p := range lifecycle.PasosFlujo(etapa) {
		fmt.Fprintf(salida, "  %d. %-10s %s\n", p.Indice+1, p.Estado, pintar(p.Etapa))
	}
	return nil
}

// TablaCmd imprime la tabla completa en el orden de declaración de las etapas.
type TablaCmd struct{}

func (c *TablaCmd) Execute(_ []string) error {
	tabla := lifecycle.Tabla()
	for _, origen := range lifecycle.Etapas() {
		destinos := make([]string, 0, len(tabla[origen]))
		for _, d := range tabla[origen] {
			destinos = append(destinos, pintar(d))
		}
		if len(destinos) == 0 {
			destinos = append(destinos, "-")
		}
		fmt.Fprintf(salida, "%s: %s\n", pintar(origen), strings.Join(destinos, ", "))
	}
	return nil
}

// SeedCmd carga un archivo semilla y cuenta ofertas por etapa.
type SeedCmd struct {
	File string `short:"f" long:"file" default:"conf/ofertas_seed.yaml" description:"archivo YAML de semilla"`
}

func (c *SeedCmd) Execute(_ []string) error {
	fh, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer fh.Close()

	semilla, err := clients.DecodeSemilla(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	conteo := make(map[models.EtapaOferta]int)
	for _, o := range semilla.Ofertas {
		conteo[o.Etapa]++
	}
	etapas := make([]models.EtapaOferta, 0, len(conteo))
	for e := range conteo {
		etapas = append(etapas, e)
	}
	sort.Slice(etapas, func(i, j int) bool { return etapas[i] < etapas[j] })

	fmt.Fprintf(salida, "ofertas: %d, auditoria: %d\n", len(semilla.Ofertas), len(semilla.Auditoria))
	for _, e := range etapas {
		fmt.Fprintf(salida, "  %s %d\n", pintar(e), conteo[e])
	}
	return nil
}

func pintar(etapa models.EtapaOferta) string {
	meta := lifecycle.Metadatos(etapa)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(meta.Color)).
		Render(string(etapa))
}
