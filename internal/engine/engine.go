// Package engine contiene los motores de scoring de los instrumentos
// psicométricos soportados. Cada motor es un par de funciones puras sobre
// las respuestas de una sesión: Calculate reduce respuestas y sus pesos de
// scoring a puntajes crudos más un tipo de resultado, Interpret convierte
// esos puntajes en un reporte estructurado. Ninguna toca almacenamiento.
package engine

import (
	"errors"
	"sort"

	"psymetric/internal/domain"
)

// ErrInsufficientData se devuelve cuando una sesión no trae respuestas
// puntuables. El caller decide si exponerlo como error de cliente.
var ErrInsufficientData = errors.New("insufficient responses to score")

// Engine puntúa un instrumento.
type Engine interface {
	Code() string
	Name() string
	Calculate(responses []domain.Response) (domain.RawScores, string, error)
	Interpret(raw domain.RawScores, resultType string) domain.Report
}

// Registry mapea códigos de instrumento a motores. Se construye una vez al
// arrancar y no muta después, así que las búsquedas no necesitan locks.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry arma un registro con los motores dados. Registrar el mismo
// código dos veces es un error de programación y hace panic al arrancar.
func NewRegistry(engines ...Engine) *Registry {
	m := make(map[string]Engine, len(engines))
	for _, e := range engines {
		if _, dup := m[e.Code()]; dup {
			panic("engine: duplicate code " + e.Code())
		}
		m[e.Code()] = e
	}
	return &Registry{engines: m}
}

// NewDefaultRegistry cablea todos los instrumentos soportados.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewMBTI(),
		NewDISC(),
		NewEnneagram(),
		NewTCI(),
		NewGallup(),
		NewHolland(),
		NewMMPI(),
		NewIQ(),
		NewTarot(),
		NewHTP(),
		NewSaju(),
		NewSasang(),
		NewFace(),
		NewBlood(),
	)
}

// Lookup devuelve el motor para code. La ausencia es un desenlace normal
// que significa instrumento no implementado, no un error.
func (r *Registry) Lookup(code string) (Engine, bool) {
	e, ok := r.engines[code]
	return e, ok
}

// Codes lista los códigos de instrumento registrados, ordenados.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.engines))
	for c := range r.engines {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
